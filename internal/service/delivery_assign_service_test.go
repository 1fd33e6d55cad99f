package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lepanier/lepanier-api/internal/constants"
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/queue"
	"github.com/lepanier/lepanier-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDeliveryAssignTest(t *testing.T) (*DeliveryAssignService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:delivery_assign_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderChange{},
		&models.AddressDelivery{},
		&models.StationDelivery{},
		&models.PickupDelivery{},
		&models.RailwayStation{},
		&models.Store{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	return NewDeliveryAssignService(orderRepo, deliveryRepo, queueClient), db
}

func createAssignTestOrder(t *testing.T, db *gorm.DB) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:      fmt.Sprintf("LP%d", time.Now().UnixNano()),
		UserID:       1,
		Status:       constants.OrderStatusConfirmed,
		Currency:     constants.Currency,
		DeliveryType: constants.DeliveryTypeAddress,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := db.Create(&models.AddressDelivery{
		OrderID:    order.ID,
		Street:     "Rue du Bourg",
		House:      "12",
		City:       "Lausanne",
		PostalCode: "1000",
	}).Error; err != nil {
		t.Fatalf("create address detail failed: %v", err)
	}
	return order
}

func createAssignTestStation(t *testing.T, db *gorm.DB) models.RailwayStation {
	t.Helper()
	station := models.RailwayStation{City: "Lausanne", Name: "Gare de Lausanne", MeetingPoint: "Main hall", IsActive: true}
	if err := db.Create(&station).Error; err != nil {
		t.Fatalf("create station failed: %v", err)
	}
	return station
}

func createAssignTestStore(t *testing.T, db *gorm.DB) models.Store {
	t.Helper()
	store := models.Store{Name: "Le Panier Vevey", Address: "Grande Place 5", City: "Vevey", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	return store
}

func countDetails(t *testing.T, db *gorm.DB, orderID uint) (address, station, pickup int64) {
	t.Helper()
	if err := db.Model(&models.AddressDelivery{}).Where("order_id = ?", orderID).Count(&address).Error; err != nil {
		t.Fatalf("count address details failed: %v", err)
	}
	if err := db.Model(&models.StationDelivery{}).Where("order_id = ?", orderID).Count(&station).Error; err != nil {
		t.Fatalf("count station details failed: %v", err)
	}
	if err := db.Model(&models.PickupDelivery{}).Where("order_id = ?", orderID).Count(&pickup).Error; err != nil {
		t.Fatalf("count pickup details failed: %v", err)
	}
	return address, station, pickup
}

func TestAssignDeliverySwitchAddressToStation(t *testing.T) {
	svc, db := setupDeliveryAssignTest(t)

	order := createAssignTestOrder(t, db)
	station := createAssignTestStation(t, db)

	updated, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "RAILWAY_STATION",
		DeliveryDate: "2025-03-10",
		TimeSlot:     "10:00-12:00",
		StationID:    &station.ID,
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if updated.DeliveryType != constants.DeliveryTypeRailwayStation {
		t.Fatalf("expected delivery type RAILWAY_STATION, got %s", updated.DeliveryType)
	}
	if updated.StationID == nil || *updated.StationID != station.ID {
		t.Fatalf("expected station id %d, got %+v", station.ID, updated.StationID)
	}
	if updated.StoreID != nil {
		t.Fatalf("expected store id cleared, got %+v", updated.StoreID)
	}
	if updated.DeliveryDate == nil || updated.DeliveryDate.Format("2006-01-02") != "2025-03-10" {
		t.Fatalf("expected delivery date 2025-03-10, got %+v", updated.DeliveryDate)
	}

	address, stationCount, pickup := countDetails(t, db, order.ID)
	if address != 0 || stationCount != 1 || pickup != 0 {
		t.Fatalf("expected exactly one station detail, got address=%d station=%d pickup=%d", address, stationCount, pickup)
	}
	if updated.StationDelivery == nil || updated.StationDelivery.StationID != station.ID {
		t.Fatalf("expected station detail preloaded, got %+v", updated.StationDelivery)
	}
}

func TestAssignDeliveryPickupTimeDefaultsToDeliveryDate(t *testing.T) {
	svc, db := setupDeliveryAssignTest(t)

	order := createAssignTestOrder(t, db)
	station := createAssignTestStation(t, db)
	store := createAssignTestStore(t, db)

	// Start from a station assignment, then switch to pickup.
	if _, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "RAILWAY_STATION",
		DeliveryDate: "2025-03-03",
		StationID:    &station.ID,
	}); err != nil {
		t.Fatalf("station assign failed: %v", err)
	}

	updated, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "PICKUP",
		DeliveryDate: "2025-03-10",
		StoreID:      &store.ID,
	})
	if err != nil {
		t.Fatalf("pickup assign failed: %v", err)
	}

	address, stationCount, pickup := countDetails(t, db, order.ID)
	if address != 0 || stationCount != 0 || pickup != 1 {
		t.Fatalf("expected only the pickup detail, got address=%d station=%d pickup=%d", address, stationCount, pickup)
	}
	if updated.PickupDelivery == nil {
		t.Fatal("expected pickup detail preloaded")
	}
	got := updated.PickupDelivery.PickupTime
	if got.Format("2006-01-02 15:04:05") != "2025-03-10 00:00:00" {
		t.Fatalf("expected pickup time to default to delivery date midnight, got %s", got.Format("2006-01-02 15:04:05"))
	}
	if updated.StationID != nil {
		t.Fatalf("expected station id cleared after switch, got %+v", updated.StationID)
	}
}

func TestAssignDeliveryIdempotentUpsert(t *testing.T) {
	svc, db := setupDeliveryAssignTest(t)

	order := createAssignTestOrder(t, db)
	store := createAssignTestStore(t, db)

	input := AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "PICKUP",
		DeliveryDate: "2025-03-10",
		StoreID:      &store.ID,
	}
	if _, err := svc.AssignDelivery(input); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	if _, err := svc.AssignDelivery(input); err != nil {
		t.Fatalf("second assign failed: %v", err)
	}

	_, _, pickup := countDetails(t, db, order.ID)
	if pickup != 1 {
		t.Fatalf("repeated assignment must not duplicate the detail row, got %d", pickup)
	}
}

func TestAssignDeliveryAppendsChangeLog(t *testing.T) {
	svc, db := setupDeliveryAssignTest(t)

	order := createAssignTestOrder(t, db)
	store := createAssignTestStore(t, db)

	if _, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "PICKUP",
		DeliveryDate: "2025-03-10",
		StoreID:      &store.ID,
		Note:         "customer request",
	}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	var changes []models.OrderChange
	if err := db.Where("order_id = ?", order.ID).Order("id asc").Find(&changes).Error; err != nil {
		t.Fatalf("load changes failed: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected one change-log entry, got %d", len(changes))
	}
	note := changes[0].Note
	if !strings.Contains(note, store.Name) || !strings.Contains(note, "2025-03-10") || !strings.Contains(note, "customer request") {
		t.Fatalf("unexpected change note %q", note)
	}
}

func TestAssignDeliveryValidation(t *testing.T) {
	svc, db := setupDeliveryAssignTest(t)

	order := createAssignTestOrder(t, db)
	store := createAssignTestStore(t, db)

	if _, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "CARRIER_PIGEON",
		DeliveryDate: "2025-03-10",
	}); err != ErrDeliveryMethodInvalid {
		t.Fatalf("expected ErrDeliveryMethodInvalid, got %v", err)
	}

	if _, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "PICKUP",
		DeliveryDate: "not-a-date",
		StoreID:      &store.ID,
	}); err != ErrDeliveryDateInvalid {
		t.Fatalf("expected ErrDeliveryDateInvalid, got %v", err)
	}

	if _, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "PICKUP",
		DeliveryDate: "2025-03-10",
	}); err != ErrStoreNotFound {
		t.Fatalf("expected ErrStoreNotFound for missing store id, got %v", err)
	}

	missingStation := uint(999)
	if _, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "RAILWAY_STATION",
		DeliveryDate: "2025-03-10",
		StationID:    &missingStation,
	}); err != ErrStationNotFound {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}

	if _, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      order.ID,
		Method:       "ADDRESS",
		DeliveryDate: "2025-03-10",
		Address:      &AssignAddressInput{Street: "Rue du Bourg"},
	}); err != ErrAddressIncomplete {
		t.Fatalf("expected ErrAddressIncomplete, got %v", err)
	}

	if _, err := svc.AssignDelivery(AssignDeliveryInput{
		OrderID:      999,
		Method:       "PICKUP",
		DeliveryDate: "2025-03-10",
		StoreID:      &store.ID,
	}); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
