package public

import (
	"strconv"
	"strings"

	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListDeliveryZones returns the served zones.
func (h *Handler) ListDeliveryZones(c *gin.Context) {
	zones, err := h.DeliveryService.ListZones()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "delivery lookup failed", err)
		return
	}
	response.Success(c, gin.H{"zones": zones})
}

// ResolveDeliveryCity maps a postal code to its delivery city.
func (h *Handler) ResolveDeliveryCity(c *gin.Context) {
	postalCode := strings.TrimSpace(c.Param("postalCode"))
	if postalCode == "" {
		response.BadRequest(c, "postal code required")
		return
	}

	city, err := h.DeliveryService.ResolveCity(postalCode)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "delivery lookup failed", err)
		return
	}
	if city == nil {
		response.NotFound(c, "postal code not served")
		return
	}
	response.Success(c, gin.H{"city": city})
}

// ListDeliveryTimeSlots returns the selectable windows for a method.
func (h *Handler) ListDeliveryTimeSlots(c *gin.Context) {
	method := c.Query("method")
	zoneID := parseOptionalUintQuery(c, "zone_id")
	weekday := parseOptionalIntQuery(c, "weekday")

	slots, err := h.DeliveryService.ListTimeSlots(method, zoneID, weekday)
	if err != nil {
		respondDeliveryQueryError(c, err)
		return
	}
	response.Success(c, gin.H{"time_slots": slots})
}

// ListPickupLocations returns the active pickup stores.
func (h *Handler) ListPickupLocations(c *gin.Context) {
	stores, err := h.DeliveryService.ListStores()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "delivery lookup failed", err)
		return
	}
	response.Success(c, gin.H{"stores": stores})
}

// ListRailwayStations returns the active railway stations.
func (h *Handler) ListRailwayStations(c *gin.Context) {
	stations, err := h.DeliveryService.ListStations()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "delivery lookup failed", err)
		return
	}
	response.Success(c, gin.H{"stations": stations})
}

// CalculateCostRequest is the cost/eligibility question body.
type CalculateCostRequest struct {
	Method     string `json:"method" binding:"required"`
	PostalCode string `json:"postal_code"`
	Canton     string `json:"canton"`
	CartTotal  string `json:"cart_total" binding:"required"`
}

// CalculateDeliveryCost evaluates delivery cost and eligibility.
func (h *Handler) CalculateDeliveryCost(c *gin.Context) {
	var req CalculateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.DeliveryService.EvaluateCost(service.CostInput{
		Method:     req.Method,
		PostalCode: req.PostalCode,
		Canton:     req.Canton,
		CartTotal:  req.CartTotal,
	})
	if err != nil {
		respondDeliveryQueryError(c, err)
		return
	}
	response.Success(c, result)
}

// ListAvailableDates returns the legal delivery days for a method.
func (h *Handler) ListAvailableDates(c *gin.Context) {
	input := service.AvailableDatesInput{
		Method: c.Query("method"),
		ZoneID: parseOptionalUintQuery(c, "zone_id"),
		Canton: c.Query("canton"),
	}

	dates, err := h.DeliveryService.AvailableDates(input)
	if err != nil {
		respondDeliveryQueryError(c, err)
		return
	}
	response.Success(c, gin.H{"dates": dates})
}

func parseOptionalUintQuery(c *gin.Context, name string) *uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(value)
	return &id
}

func parseOptionalIntQuery(c *gin.Context, name string) *int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
