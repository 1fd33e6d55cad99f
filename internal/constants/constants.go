package constants

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// Delivery method wire values
const (
	DeliveryTypeAddress        = "ADDRESS"
	DeliveryTypeRailwayStation = "RAILWAY_STATION"
	DeliveryTypePickup         = "PICKUP"
)

// Canton codes used as zone fallback keys
const (
	CantonVaud   = "VD"
	CantonGeneva = "GE"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Queue and task names
const (
	QueueDefault = "default"

	TaskOrderStatusEmail    = "email:order_status"
	TaskDeliveryChangeEmail = "email:delivery_change"
)

// Currency is fixed; all amounts are CHF with two-decimal display.
const Currency = "CHF"
