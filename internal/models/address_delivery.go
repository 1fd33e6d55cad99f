package models

import "time"

// AddressDelivery is the home-delivery detail record, 1:1 with its order.
type AddressDelivery struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	Street     string    `gorm:"not null" json:"street"`
	House      string    `gorm:"not null" json:"house"`
	Apartment  string    `gorm:"default:''" json:"apartment,omitempty"`
	City       string    `gorm:"not null" json:"city"`
	PostalCode string    `gorm:"type:varchar(10);not null" json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (AddressDelivery) TableName() string {
	return "address_deliveries"
}
