package models

import "time"

// PickupDelivery is the store-pickup detail record, 1:1 with its order.
type PickupDelivery struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	StoreID    uint      `gorm:"index;not null" json:"store_id"`
	PickupTime time.Time `gorm:"not null" json:"pickup_time"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

// TableName sets the table name.
func (PickupDelivery) TableName() string {
	return "pickup_deliveries"
}
