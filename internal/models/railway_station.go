package models

import "time"

// RailwayStation is reference data for station deliveries.
type RailwayStation struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	City         string    `gorm:"not null" json:"city"`
	Name         string    `gorm:"not null" json:"name"`
	MeetingPoint string    `json:"meeting_point,omitempty"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (RailwayStation) TableName() string {
	return "railway_stations"
}
