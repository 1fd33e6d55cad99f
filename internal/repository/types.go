package repository

import "time"

// ProductListFilter filters product listings.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page         int
	PageSize     int
	UserID       uint
	Status       string
	OrderNo      string
	DeliveryType string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// TimeSlotFilter filters delivery time-slot listings.
type TimeSlotFilter struct {
	ZoneID     *uint
	Weekday    *int
	OnlyActive bool
}
