package service

import (
	"strings"

	"github.com/lepanier/lepanier-api/internal/constants"
)

// DeliveryMethod is the closed set of fulfillment methods. Every switch
// over it must handle all three values; parsing rejects anything else at
// the boundary so the core never sees an unknown method.
type DeliveryMethod string

const (
	DeliveryAddress        DeliveryMethod = constants.DeliveryTypeAddress
	DeliveryRailwayStation DeliveryMethod = constants.DeliveryTypeRailwayStation
	DeliveryPickup         DeliveryMethod = constants.DeliveryTypePickup
)

// ParseDeliveryMethod validates a raw method string.
func ParseDeliveryMethod(raw string) (DeliveryMethod, error) {
	switch DeliveryMethod(strings.ToUpper(strings.TrimSpace(raw))) {
	case DeliveryAddress:
		return DeliveryAddress, nil
	case DeliveryRailwayStation:
		return DeliveryRailwayStation, nil
	case DeliveryPickup:
		return DeliveryPickup, nil
	default:
		return "", ErrDeliveryMethodInvalid
	}
}

// String returns the wire value.
func (m DeliveryMethod) String() string {
	return string(m)
}
