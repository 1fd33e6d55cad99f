package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lepanier/lepanier-api/internal/logger"
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/queue"
	"github.com/lepanier/lepanier-api/internal/repository"

	"gorm.io/gorm"
)

// DeliveryAssignService rewrites an order's fulfillment method. The whole
// rewrite runs in one transaction so an order never ends up with detail
// records for two methods at once.
type DeliveryAssignService struct {
	orderRepo    repository.OrderRepository
	deliveryRepo repository.DeliveryRepository
	queueClient  *queue.Client
}

// NewDeliveryAssignService builds the assignment service.
func NewDeliveryAssignService(orderRepo repository.OrderRepository, deliveryRepo repository.DeliveryRepository, queueClient *queue.Client) *DeliveryAssignService {
	return &DeliveryAssignService{
		orderRepo:    orderRepo,
		deliveryRepo: deliveryRepo,
		queueClient:  queueClient,
	}
}

// AssignAddressInput is the street address for ADDRESS delivery.
type AssignAddressInput struct {
	Street      string
	HouseNumber string
	Apartment   string
	City        string
	PostalCode  string
}

// AssignDeliveryInput describes the target fulfillment of one order.
// MeetingTime and PickupTime are optional RFC 3339 timestamps; when absent
// they default to the delivery date at midnight.
type AssignDeliveryInput struct {
	OrderID      uint
	Method       string
	DeliveryDate string // 2006-01-02
	TimeSlot     string
	StationID    *uint
	StoreID      *uint
	Address      *AssignAddressInput
	MeetingTime  string
	PickupTime   string
	Note         string
}

// AssignDelivery switches the order to the requested method: it removes
// detail records of the other methods, upserts the target detail, updates
// the order columns and appends a change-log entry, all atomically. The
// customer notification is enqueued after commit and never rolls back the
// assignment.
func (s *DeliveryAssignService) AssignDelivery(input AssignDeliveryInput) (*models.Order, error) {
	method, err := ParseDeliveryMethod(input.Method)
	if err != nil {
		return nil, err
	}
	deliveryDate, err := parseDeliveryDate(input.DeliveryDate)
	if err != nil {
		return nil, err
	}

	station, store, err := resolveFulfillmentTarget(s.deliveryRepo, method, input.StationID, input.StoreID, input.Address)
	if err != nil {
		return nil, err
	}

	meetingTime, err := parseOptionalTime(input.MeetingTime, deliveryDate)
	if err != nil {
		return nil, err
	}
	pickupTime, err := parseOptionalTime(input.PickupTime, deliveryDate)
	if err != nil {
		return nil, err
	}

	note := buildAssignmentNote(method, deliveryDate, input.TimeSlot, station, store, strings.TrimSpace(input.Note))

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txOrders := s.orderRepo.WithTx(tx)

		order, err := txOrders.GetByID(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}

		if err := deleteObsoleteDetails(tx, order.ID, method); err != nil {
			return err
		}

		switch method {
		case DeliveryAddress:
			if err := upsertAddressDetail(tx, order.ID, input.Address); err != nil {
				return err
			}
		case DeliveryRailwayStation:
			if err := upsertStationDetail(tx, order.ID, station.ID, meetingTime); err != nil {
				return err
			}
		case DeliveryPickup:
			if err := upsertPickupDetail(tx, order.ID, store.ID, pickupTime); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"delivery_type":      method.String(),
			"delivery_date":      deliveryDate,
			"delivery_time_slot": strings.TrimSpace(input.TimeSlot),
			"station_id":         nil,
			"store_id":           nil,
		}
		if method == DeliveryRailwayStation {
			updates["station_id"] = station.ID
		}
		if method == DeliveryPickup {
			updates["store_id"] = store.ID
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}

		return txOrders.AppendChange(order.ID, note)
	})
	if err != nil {
		return nil, err
	}

	// Committed. Notification failures are logged, never surfaced.
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueDeliveryChangeEmail(queue.DeliveryChangeEmailPayload{
			OrderID: input.OrderID,
			Method:  method.String(),
			Note:    note,
		}); err != nil {
			logger.Warnw("enqueue delivery change email failed", "order_id", input.OrderID, "error", err)
		}
	}

	return s.orderRepo.GetByID(input.OrderID)
}

// resolveFulfillmentTarget validates the method's destination: an existing
// station, an existing store, or a complete street address.
func resolveFulfillmentTarget(deliveryRepo repository.DeliveryRepository, method DeliveryMethod, stationID, storeID *uint, address *AssignAddressInput) (*models.RailwayStation, *models.Store, error) {
	switch method {
	case DeliveryRailwayStation:
		if stationID == nil || *stationID == 0 {
			return nil, nil, ErrStationNotFound
		}
		station, err := deliveryRepo.GetStationByID(*stationID)
		if err != nil {
			return nil, nil, err
		}
		if station == nil {
			return nil, nil, ErrStationNotFound
		}
		return station, nil, nil
	case DeliveryPickup:
		if storeID == nil || *storeID == 0 {
			return nil, nil, ErrStoreNotFound
		}
		store, err := deliveryRepo.GetStoreByID(*storeID)
		if err != nil {
			return nil, nil, err
		}
		if store == nil {
			return nil, nil, ErrStoreNotFound
		}
		return nil, store, nil
	case DeliveryAddress:
		if address == nil ||
			strings.TrimSpace(address.Street) == "" ||
			strings.TrimSpace(address.City) == "" ||
			strings.TrimSpace(address.PostalCode) == "" {
			return nil, nil, ErrAddressIncomplete
		}
		return nil, nil, nil
	}
	return nil, nil, ErrDeliveryMethodInvalid
}

func parseDeliveryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrDeliveryDateInvalid
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, ErrDeliveryDateInvalid
	}
	return day, nil
}

// parseOptionalTime parses an RFC 3339 timestamp, defaulting to the
// delivery date at midnight when absent.
func parseOptionalTime(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, ErrDeliveryDateInvalid
	}
	return t, nil
}

// deleteObsoleteDetails removes the detail records of every method except
// the target.
func deleteObsoleteDetails(tx *gorm.DB, orderID uint, target DeliveryMethod) error {
	if target != DeliveryAddress {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.AddressDelivery{}).Error; err != nil {
			return err
		}
	}
	if target != DeliveryRailwayStation {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.StationDelivery{}).Error; err != nil {
			return err
		}
	}
	if target != DeliveryPickup {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.PickupDelivery{}).Error; err != nil {
			return err
		}
	}
	return nil
}

func upsertAddressDetail(tx *gorm.DB, orderID uint, addr *AssignAddressInput) error {
	detail := models.AddressDelivery{
		OrderID:    orderID,
		Street:     strings.TrimSpace(addr.Street),
		House:      strings.TrimSpace(addr.HouseNumber),
		Apartment:  strings.TrimSpace(addr.Apartment),
		City:       strings.TrimSpace(addr.City),
		PostalCode: strings.TrimSpace(addr.PostalCode),
	}
	var existing models.AddressDelivery
	err := tx.Where("order_id = ?", orderID).First(&existing).Error
	if err == nil {
		detail.ID = existing.ID
		return tx.Model(&existing).Updates(map[string]interface{}{
			"street":      detail.Street,
			"house":       detail.House,
			"apartment":   detail.Apartment,
			"city":        detail.City,
			"postal_code": detail.PostalCode,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&detail).Error
}

func upsertStationDetail(tx *gorm.DB, orderID uint, stationID uint, meetingTime time.Time) error {
	var existing models.StationDelivery
	err := tx.Where("order_id = ?", orderID).First(&existing).Error
	if err == nil {
		return tx.Model(&existing).Updates(map[string]interface{}{
			"station_id":   stationID,
			"meeting_time": meetingTime,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&models.StationDelivery{
		OrderID:     orderID,
		StationID:   stationID,
		MeetingTime: meetingTime,
	}).Error
}

func upsertPickupDetail(tx *gorm.DB, orderID uint, storeID uint, pickupTime time.Time) error {
	var existing models.PickupDelivery
	err := tx.Where("order_id = ?", orderID).First(&existing).Error
	if err == nil {
		return tx.Model(&existing).Updates(map[string]interface{}{
			"store_id":    storeID,
			"pickup_time": pickupTime,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&models.PickupDelivery{
		OrderID:    orderID,
		StoreID:    storeID,
		PickupTime: pickupTime,
	}).Error
}

func buildAssignmentNote(method DeliveryMethod, date time.Time, slot string, station *models.RailwayStation, store *models.Store, extra string) string {
	var sb strings.Builder
	switch method {
	case DeliveryAddress:
		sb.WriteString("Delivery changed to home delivery")
	case DeliveryRailwayStation:
		sb.WriteString("Delivery changed to railway station")
		if station != nil {
			sb.WriteString(" " + station.Name)
		}
	case DeliveryPickup:
		sb.WriteString("Delivery changed to store pickup")
		if store != nil {
			sb.WriteString(" at " + store.Name)
		}
	}
	sb.WriteString(" on " + date.Format("2006-01-02"))
	if slot = strings.TrimSpace(slot); slot != "" {
		fmt.Fprintf(&sb, " (%s)", slot)
	}
	if extra != "" {
		sb.WriteString(": " + extra)
	}
	return sb.String()
}
