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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderChange{},
		&models.AddressDelivery{},
		&models.StationDelivery{},
		&models.PickupDelivery{},
		&models.DeliveryZone{},
		&models.DeliveryCity{},
		&models.DeliveryTimeSlot{},
		&models.RailwayStation{},
		&models.Store{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	deliverySvc := NewDeliveryService(deliveryRepo, 14, "200")
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	return NewOrderService(orderRepo, cartRepo, deliveryRepo, deliverySvc, queueClient), db
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, slug, price string) models.Product {
	t.Helper()
	category := models.Category{Slug: "legumes-" + slug, Name: "Légumes", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:  category.ID,
		Slug:        slug,
		Name:        "Panier " + slug,
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Unit:        "piece",
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func addCartLine(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) {
	t.Helper()
	if err := db.Create(&models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func TestCreateFromCartPickup(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	product := createOrderTestProduct(t, db, "hebdo", "24.90")
	addCartLine(t, db, 7, product.ID, 2)
	store := models.Store{Name: "Le Panier Vevey", Address: "Grande Place 5", City: "Vevey", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	order, err := svc.CreateFromCart(7, CreateOrderInput{
		Method:       "PICKUP",
		DeliveryDate: "2025-03-10",
		TimeSlot:     "09:00-12:00",
		StoreID:      &store.ID,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if order.TotalAmount.String() != "49.80" {
		t.Fatalf("expected total 49.80, got %s", order.TotalAmount)
	}
	if order.DeliveryCost.String() != "0.00" {
		t.Fatalf("expected free delivery, got %s", order.DeliveryCost)
	}
	if len(order.Items) != 1 || order.Items[0].UnitPrice.String() != "24.90" || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected item snapshot %+v", order.Items)
	}
	if order.PickupDelivery == nil || order.PickupDelivery.StoreID != store.ID {
		t.Fatalf("expected pickup detail, got %+v", order.PickupDelivery)
	}
	if !strings.HasPrefix(order.OrderNo, "LP") {
		t.Fatalf("unexpected order number %s", order.OrderNo)
	}
	if len(order.Changes) != 1 {
		t.Fatalf("expected one change-log entry, got %d", len(order.Changes))
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared after checkout, got %d lines", cartCount)
	}
}

func TestCreateFromCartAddressBelowMinimum(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	product := createOrderTestProduct(t, db, "petit", "30.00")
	addCartLine(t, db, 7, product.ID, 1)

	_, err := svc.CreateFromCart(7, CreateOrderInput{
		Method:       "ADDRESS",
		DeliveryDate: "2025-03-08",
		Address: &AssignAddressInput{
			Street:     "Chemin des Vignes",
			City:       "Sion",
			PostalCode: "1950",
		},
	})
	if err != ErrDeliveryMinimumNotReached {
		t.Fatalf("expected ErrDeliveryMinimumNotReached, got %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("no order should be created, got %d", orderCount)
	}
}

func TestCreateFromCartKnownCityNoMinimum(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	zone := models.DeliveryZone{Canton: "VD", Name: "Lavaux", AllowedWeekday: 6}
	if err := db.Create(&zone).Error; err != nil {
		t.Fatalf("create zone failed: %v", err)
	}
	if err := db.Create(&models.DeliveryCity{ZoneID: zone.ID, PostalCode: "1000", Name: "Lausanne"}).Error; err != nil {
		t.Fatalf("create city failed: %v", err)
	}

	product := createOrderTestProduct(t, db, "mini", "12.00")
	addCartLine(t, db, 7, product.ID, 1)

	order, err := svc.CreateFromCart(7, CreateOrderInput{
		Method:       "ADDRESS",
		DeliveryDate: "2025-03-08",
		Address: &AssignAddressInput{
			Street:     "Rue du Bourg",
			City:       "Lausanne",
			PostalCode: "1000",
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.AddressDelivery == nil || order.AddressDelivery.PostalCode != "1000" {
		t.Fatalf("expected address detail, got %+v", order.AddressDelivery)
	}
}

func TestCreateFromCartEmptyCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	store := models.Store{Name: "Le Panier Vevey", Address: "Grande Place 5", City: "Vevey", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	if _, err := svc.CreateFromCart(7, CreateOrderInput{
		Method:       "PICKUP",
		DeliveryDate: "2025-03-10",
		StoreID:      &store.ID,
	}); err != ErrCartEmpty {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	order := models.Order{
		OrderNo:      "LP-TEST-1",
		UserID:       7,
		Status:       constants.OrderStatusPending,
		Currency:     constants.Currency,
		DeliveryType: constants.DeliveryTypePickup,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	updated, err := svc.UpdateStatus(order.ID, "Confirmed")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}
	if len(updated.Changes) != 1 || !strings.Contains(updated.Changes[0].Note, "pending") {
		t.Fatalf("expected change-log entry naming the old status, got %+v", updated.Changes)
	}

	if _, err := svc.UpdateStatus(order.ID, "shipped"); err != ErrOrderStatusInvalid {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
	if _, err := svc.UpdateStatus(999, "confirmed"); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
