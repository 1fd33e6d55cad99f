package models

import "time"

// OrderChange is one entry of an order's append-only change log.
// Rows are never updated or deleted; ordering is by id.
type OrderChange struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Note      string    `gorm:"not null" json:"note"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (OrderChange) TableName() string {
	return "order_changes"
}
