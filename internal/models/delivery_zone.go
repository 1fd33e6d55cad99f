package models

import "time"

// DeliveryZone is a canton-level grouping of cities sharing one fixed
// weekly address-delivery day. Seeded at setup time, rarely mutated.
type DeliveryZone struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Canton         string    `gorm:"type:varchar(2);index;not null" json:"canton"`
	Name           string    `gorm:"not null" json:"name"`
	AllowedWeekday int       `gorm:"not null" json:"allowed_weekday"` // 0=Sunday .. 6=Saturday
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (DeliveryZone) TableName() string {
	return "delivery_zones"
}
