package admin

import (
	"errors"

	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/gin-gonic/gin"
)

// DeliveryAddressRequest is the street address for home delivery.
type DeliveryAddressRequest struct {
	Street      string `json:"street" binding:"required"`
	HouseNumber string `json:"house_number"`
	Apartment   string `json:"apartment"`
	City        string `json:"city" binding:"required"`
	PostalCode  string `json:"postal_code" binding:"required"`
}

// AssignDeliveryRequest rewrites an order's fulfillment.
type AssignDeliveryRequest struct {
	Method       string                  `json:"method" binding:"required"`
	DeliveryDate string                  `json:"delivery_date" binding:"required"`
	TimeSlot     string                  `json:"time_slot"`
	StationID    *uint                   `json:"station_id"`
	StoreID      *uint                   `json:"store_id"`
	Address      *DeliveryAddressRequest `json:"address"`
	MeetingTime  string                  `json:"meeting_time"`
	PickupTime   string                  `json:"pickup_time"`
	Note         string                  `json:"note"`
}

// AssignOrderDelivery switches an order to another fulfillment method or
// reschedules it.
func (h *Handler) AssignOrderDelivery(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AssignDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	input := service.AssignDeliveryInput{
		OrderID:      orderID,
		Method:       req.Method,
		DeliveryDate: req.DeliveryDate,
		TimeSlot:     req.TimeSlot,
		StationID:    req.StationID,
		StoreID:      req.StoreID,
		MeetingTime:  req.MeetingTime,
		PickupTime:   req.PickupTime,
		Note:         req.Note,
	}
	if req.Address != nil {
		input.Address = &service.AssignAddressInput{
			Street:      req.Address.Street,
			HouseNumber: req.Address.HouseNumber,
			Apartment:   req.Address.Apartment,
			City:        req.Address.City,
			PostalCode:  req.Address.PostalCode,
		}
	}

	order, err := h.DeliveryAssignService.AssignDelivery(input)
	if err != nil {
		respondAssignError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// GetOrderDelivery returns the order's current fulfillment and change log.
func (h *Handler) GetOrderDelivery(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetAdminOrder(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.Success(c, gin.H{
		"delivery_type":      order.DeliveryType,
		"delivery_date":      order.DeliveryDate,
		"delivery_time_slot": order.DeliveryTimeSlot,
		"delivery_cost":      order.DeliveryCost,
		"address_delivery":   order.AddressDelivery,
		"station_delivery":   order.StationDelivery,
		"pickup_delivery":    order.PickupDelivery,
		"changes":            order.Changes,
	})
}

// ListDeliveryZones returns zones with their cities for planning.
func (h *Handler) ListDeliveryZones(c *gin.Context) {
	zones, err := h.DeliveryRepo.ListZones()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "delivery lookup failed", err)
		return
	}

	out := make([]gin.H, 0, len(zones))
	for _, zone := range zones {
		cities, err := h.DeliveryRepo.ListCitiesByZone(zone.ID)
		if err != nil {
			handlershared.RespondError(c, response.CodeInternal, "delivery lookup failed", err)
			return
		}
		out = append(out, gin.H{
			"zone":   zone,
			"cities": cities,
		})
	}
	response.Success(c, gin.H{"zones": out})
}

func respondAssignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, service.ErrStationNotFound):
		response.NotFound(c, "railway station not found")
	case errors.Is(err, service.ErrStoreNotFound):
		response.NotFound(c, "store not found")
	case errors.Is(err, service.ErrDeliveryMethodInvalid):
		response.BadRequest(c, "delivery method invalid")
	case errors.Is(err, service.ErrDeliveryDateInvalid):
		response.BadRequest(c, "delivery date invalid")
	case errors.Is(err, service.ErrAddressIncomplete):
		response.BadRequest(c, "delivery address incomplete")
	default:
		handlershared.RespondError(c, response.CodeInternal, "delivery assignment failed", err)
	}
}
