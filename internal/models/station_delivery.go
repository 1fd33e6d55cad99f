package models

import "time"

// StationDelivery is the railway-station detail record, 1:1 with its order.
type StationDelivery struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrderID     uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	StationID   uint      `gorm:"index;not null" json:"station_id"`
	MeetingTime time.Time `gorm:"not null" json:"meeting_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Station *RailwayStation `gorm:"foreignKey:StationID" json:"station,omitempty"`
}

// TableName sets the table name.
func (StationDelivery) TableName() string {
	return "station_deliveries"
}
