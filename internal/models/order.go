package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is the fulfillment aggregate root. At most one of the three
// delivery detail records may exist at a time, and it must agree with
// DeliveryType; the assignment transaction is the only writer that
// maintains that invariant.
type Order struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	OrderNo          string         `gorm:"uniqueIndex;not null" json:"order_no"`
	UserID           uint           `gorm:"index;not null" json:"user_id"`
	Status           string         `gorm:"index;not null" json:"status"`
	Currency         string         `gorm:"not null" json:"currency"`
	TotalAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	DeliveryType     string         `gorm:"type:varchar(20);index" json:"delivery_type"`
	DeliveryDate     *time.Time     `gorm:"index" json:"delivery_date"`
	DeliveryTimeSlot string         `gorm:"type:varchar(100)" json:"delivery_time_slot"`
	DeliveryCost     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_cost"`
	StationID        *uint          `gorm:"index" json:"station_id,omitempty"` // set only for RAILWAY_STATION
	StoreID          *uint          `gorm:"index" json:"store_id,omitempty"`   // set only for PICKUP
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Items   []OrderItem   `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Changes []OrderChange `gorm:"foreignKey:OrderID" json:"changes,omitempty"`

	AddressDelivery *AddressDelivery `gorm:"foreignKey:OrderID" json:"address_delivery,omitempty"`
	StationDelivery *StationDelivery `gorm:"foreignKey:OrderID" json:"station_delivery,omitempty"`
	PickupDelivery  *PickupDelivery  `gorm:"foreignKey:OrderID" json:"pickup_delivery,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
