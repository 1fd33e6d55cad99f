package models

import "time"

// DeliveryTimeSlot is a named delivery time window, optionally scoped
// to a zone and a weekday. Pickup slots are a fixed set in code and are
// not stored here.
type DeliveryTimeSlot struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ZoneID    *uint     `gorm:"index" json:"zone_id,omitempty"`
	Weekday   *int      `gorm:"index" json:"weekday,omitempty"` // 0=Sunday .. 6=Saturday
	Label     string    `gorm:"not null" json:"label"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"` // HH:MM
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`   // HH:MM
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (DeliveryTimeSlot) TableName() string {
	return "delivery_time_slots"
}
