package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lepanier/lepanier-api/internal/constants"
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/repository"

	"github.com/shopspring/decimal"
)

// DeliveryService answers the read-only fulfillment questions: which city a
// postal code belongs to, which dates are legal for a method, and what a
// delivery costs. It never mutates state.
type DeliveryService struct {
	deliveryRepo repository.DeliveryRepository
	horizonDays  int
	minimumOrder decimal.Decimal
}

const defaultHorizonDays = 14

// NewDeliveryService builds the delivery planning service.
// minimumOrderCHF is the floor applied outside the known delivery area.
func NewDeliveryService(deliveryRepo repository.DeliveryRepository, horizonDays int, minimumOrderCHF string) *DeliveryService {
	if horizonDays <= 0 {
		horizonDays = defaultHorizonDays
	}
	minimum, err := decimal.NewFromString(strings.TrimSpace(minimumOrderCHF))
	if err != nil || minimum.IsNegative() {
		minimum = decimal.NewFromInt(200)
	}
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		horizonDays:  horizonDays,
		minimumOrder: minimum,
	}
}

// ResolveCity maps a postal code to its delivery city and zone. A miss is
// a normal outcome (most postal codes are outside the delivery area) and
// returns (nil, nil).
func (s *DeliveryService) ResolveCity(postalCode string) (*models.DeliveryCity, error) {
	return s.deliveryRepo.FindCityByPostalCode(postalCode)
}

// ListZones returns all delivery zones.
func (s *DeliveryService) ListZones() ([]models.DeliveryZone, error) {
	return s.deliveryRepo.ListZones()
}

// ListStations returns active railway stations.
func (s *DeliveryService) ListStations() ([]models.RailwayStation, error) {
	return s.deliveryRepo.ListStations()
}

// ListStores returns active pickup locations.
func (s *DeliveryService) ListStores() ([]models.Store, error) {
	return s.deliveryRepo.ListStores()
}

// TimeSlotView is one selectable delivery window.
type TimeSlotView struct {
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Pickup windows are fixed store opening hours, not zone data.
var pickupTimeSlots = []TimeSlotView{
	{Label: "Morning", StartTime: "09:00", EndTime: "12:00"},
	{Label: "Afternoon", StartTime: "14:00", EndTime: "18:00"},
}

// ListTimeSlots returns the selectable windows for a method. Pickup uses
// the fixed set; address and station deliveries read zone slots.
func (s *DeliveryService) ListTimeSlots(method string, zoneID *uint, weekday *int) ([]TimeSlotView, error) {
	parsed, err := ParseDeliveryMethod(method)
	if err != nil {
		return nil, err
	}
	if parsed == DeliveryPickup {
		out := make([]TimeSlotView, len(pickupTimeSlots))
		copy(out, pickupTimeSlots)
		return out, nil
	}
	slots, err := s.deliveryRepo.ListTimeSlots(repository.TimeSlotFilter{
		ZoneID:     zoneID,
		Weekday:    weekday,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	views := make([]TimeSlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, TimeSlotView{
			Label:     slot.Label,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return views, nil
}

// AvailableDate is one legal delivery day.
type AvailableDate struct {
	Date    string `json:"date"` // ISO-8601 calendar date
	Weekday string `json:"weekday"`
}

// AvailableDatesInput selects the method and, for address delivery, the
// zone or canton used to resolve the allowed weekday.
type AvailableDatesInput struct {
	Method string
	ZoneID *uint
	Canton string
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "dimanche",
	time.Monday:    "lundi",
	time.Tuesday:   "mardi",
	time.Wednesday: "mercredi",
	time.Thursday:  "jeudi",
	time.Friday:    "vendredi",
	time.Saturday:  "samedi",
}

var pickupWeekdays = map[time.Weekday]bool{
	time.Sunday:   true,
	time.Monday:   true,
	time.Tuesday:  true,
	time.Saturday: true,
}

// AvailableDates walks the horizon starting tomorrow (24h minimum notice)
// and keeps the days the method's weekday rule allows. An empty result is
// valid output, not an error.
func (s *DeliveryService) AvailableDates(input AvailableDatesInput) ([]AvailableDate, error) {
	method, err := ParseDeliveryMethod(input.Method)
	if err != nil {
		return nil, err
	}

	var allowed func(time.Weekday) bool
	switch method {
	case DeliveryPickup:
		allowed = func(day time.Weekday) bool { return pickupWeekdays[day] }
	case DeliveryRailwayStation:
		allowed = func(day time.Weekday) bool { return day == time.Monday }
	case DeliveryAddress:
		weekday, ok, err := s.resolveAddressWeekday(input.ZoneID, input.Canton)
		if err != nil {
			return nil, err
		}
		if !ok {
			// No zone and no canton: the caller must resolve one first.
			return []AvailableDate{}, nil
		}
		allowed = func(day time.Weekday) bool { return day == weekday }
	}

	dates := make([]AvailableDate, 0, s.horizonDays)
	start := time.Now().AddDate(0, 0, 1)
	for i := 0; i < s.horizonDays; i++ {
		day := start.AddDate(0, 0, i)
		if !allowed(day.Weekday()) {
			continue
		}
		dates = append(dates, AvailableDate{
			Date:    day.Format("2006-01-02"),
			Weekday: weekdayNames[day.Weekday()],
		})
	}
	return dates, nil
}

// resolveAddressWeekday resolves the weekly address-delivery day from the
// zone, falling back to canton defaults when no zone is given.
func (s *DeliveryService) resolveAddressWeekday(zoneID *uint, canton string) (time.Weekday, bool, error) {
	if zoneID != nil && *zoneID > 0 {
		zone, err := s.deliveryRepo.GetZoneByID(*zoneID)
		if err != nil {
			return 0, false, err
		}
		if zone == nil {
			return 0, false, ErrZoneNotFound
		}
		return time.Weekday(zone.AllowedWeekday), true, nil
	}
	switch strings.ToUpper(strings.TrimSpace(canton)) {
	case constants.CantonVaud:
		return time.Saturday, true, nil
	case constants.CantonGeneva:
		return time.Monday, true, nil
	default:
		return 0, false, nil
	}
}

// CostInput is one cost/eligibility question.
type CostInput struct {
	Method     string
	PostalCode string
	Canton     string
	CartTotal  string
}

// CostEvaluation is the answer: the fee, the threshold, whether the cart
// qualifies, and a customer-facing explanation.
type CostEvaluation struct {
	Cost         models.Money `json:"cost"`
	MinimumOrder models.Money `json:"minimum_order"`
	IsValid      bool         `json:"is_valid"`
	Message      string       `json:"message"`
}

// EvaluateCost applies the delivery pricing rules. No method charges a fee
// under current policy; address delivery outside the known city list
// requires the configured minimum order.
func (s *DeliveryService) EvaluateCost(input CostInput) (*CostEvaluation, error) {
	method, err := ParseDeliveryMethod(input.Method)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(input.CartTotal)
	if raw == "" {
		return nil, ErrCartTotalInvalid
	}
	cartTotal, err := decimal.NewFromString(raw)
	if err != nil || cartTotal.IsNegative() {
		return nil, ErrCartTotalInvalid
	}

	zero := models.NewMoneyFromDecimal(decimal.Zero)
	switch method {
	case DeliveryPickup:
		return &CostEvaluation{
			Cost:         zero,
			MinimumOrder: zero,
			IsValid:      true,
			Message:      "Free pickup at the store.",
		}, nil
	case DeliveryRailwayStation:
		return &CostEvaluation{
			Cost:         zero,
			MinimumOrder: zero,
			IsValid:      true,
			Message:      "Free delivery to the railway station.",
		}, nil
	case DeliveryAddress:
		city, err := s.ResolveCity(input.PostalCode)
		if err != nil {
			return nil, err
		}
		if city != nil {
			return &CostEvaluation{
				Cost:         zero,
				MinimumOrder: zero,
				IsValid:      true,
				Message:      fmt.Sprintf("Free delivery to %s, no minimum order.", city.Name),
			}, nil
		}
		minimum := models.NewMoneyFromDecimal(s.minimumOrder)
		if cartTotal.GreaterThanOrEqual(s.minimumOrder) {
			return &CostEvaluation{
				Cost:         zero,
				MinimumOrder: minimum,
				IsValid:      true,
				Message:      fmt.Sprintf("Free delivery for orders of %s CHF or more.", s.minimumOrder.StringFixed(2)),
			}, nil
		}
		shortfall := s.minimumOrder.Sub(cartTotal)
		return &CostEvaluation{
			Cost:         zero,
			MinimumOrder: minimum,
			IsValid:      false,
			Message: fmt.Sprintf("Minimum order of %s CHF not reached: add %s CHF to qualify for delivery.",
				s.minimumOrder.StringFixed(2), shortfall.StringFixed(2)),
		}, nil
	}
	return nil, ErrDeliveryMethodInvalid
}
