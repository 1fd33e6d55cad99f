package service

import "errors"

// Validation errors (caller input)
var (
	ErrDeliveryMethodInvalid = errors.New("delivery method invalid")
	ErrCartTotalInvalid      = errors.New("cart total invalid")
	ErrDeliveryDateInvalid   = errors.New("delivery date invalid")
	ErrInvalidOrderItem      = errors.New("order item invalid")
	ErrAddressIncomplete     = errors.New("delivery address incomplete")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrOrderStatusInvalid    = errors.New("order status invalid")
	ErrQuantityInvalid       = errors.New("quantity invalid")
	ErrInvalidEmail          = errors.New("email address invalid")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailTaken            = errors.New("email already registered")
	ErrPasswordTooShort      = errors.New("password too short")
	ErrUserDisabled          = errors.New("user account disabled")
)

// Not-found errors
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrZoneNotFound     = errors.New("delivery zone not found")
	ErrStationNotFound  = errors.New("railway station not found")
	ErrStoreNotFound    = errors.New("store not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Internal failures
var (
	ErrOrderFetchFailed          = errors.New("order fetch failed")
	ErrOrderCreateFailed         = errors.New("order create failed")
	ErrDeliveryAssignFailed      = errors.New("delivery assignment failed")
	ErrDeliveryMinimumNotReached = errors.New("delivery minimum order not reached")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailSendFailed           = errors.New("email send failed")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
