package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDeliveryServiceTest(t *testing.T) (*DeliveryService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:delivery_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.DeliveryZone{},
		&models.DeliveryCity{},
		&models.DeliveryTimeSlot{},
		&models.RailwayStation{},
		&models.Store{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	return NewDeliveryService(repository.NewDeliveryRepository(db), 14, "200"), db
}

func createTestZone(t *testing.T, db *gorm.DB, canton, name string, weekday int) models.DeliveryZone {
	t.Helper()
	zone := models.DeliveryZone{Canton: canton, Name: name, AllowedWeekday: weekday}
	if err := db.Create(&zone).Error; err != nil {
		t.Fatalf("create zone failed: %v", err)
	}
	return zone
}

func createTestCity(t *testing.T, db *gorm.DB, zoneID uint, postalCode, name string) models.DeliveryCity {
	t.Helper()
	city := models.DeliveryCity{ZoneID: zoneID, PostalCode: postalCode, Name: name}
	if err := db.Create(&city).Error; err != nil {
		t.Fatalf("create city failed: %v", err)
	}
	return city
}

func TestResolveCityByPostalCode(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)

	lavaux := createTestZone(t, db, "VD", "Lavaux", 6)
	geneve := createTestZone(t, db, "GE", "Genève", 1)
	createTestCity(t, db, lavaux.ID, "1000", "Lausanne")
	createTestCity(t, db, geneve.ID, "1200", "Genève")

	city, err := svc.ResolveCity("1000")
	if err != nil {
		t.Fatalf("resolve city failed: %v", err)
	}
	if city == nil || city.Name != "Lausanne" {
		t.Fatalf("expected Lausanne, got %+v", city)
	}
	if city.Zone.Canton != "VD" || city.Zone.AllowedWeekday != 6 {
		t.Fatalf("expected VD zone with Saturday, got %+v", city.Zone)
	}

	missing, err := svc.ResolveCity("9999")
	if err != nil {
		t.Fatalf("resolve unknown postal failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown postal code, got %+v", missing)
	}
}

func TestResolveCityFirstMatchWins(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)

	lavaux := createTestZone(t, db, "VD", "Lavaux", 6)
	geneve := createTestZone(t, db, "GE", "Genève", 1)
	first := createTestCity(t, db, lavaux.ID, "1400", "Yverdon")
	createTestCity(t, db, geneve.ID, "1400", "Yverdon-bis")

	city, err := svc.ResolveCity("1400")
	if err != nil {
		t.Fatalf("resolve city failed: %v", err)
	}
	if city == nil || city.ID != first.ID {
		t.Fatalf("expected first city by id %d, got %+v", first.ID, city)
	}
}

func parseTestDate(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		t.Fatalf("bad date %q: %v", raw, err)
	}
	return day
}

func TestAvailableDatesPickup(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	dates, err := svc.AvailableDates(AvailableDatesInput{Method: "PICKUP"})
	if err != nil {
		t.Fatalf("available dates failed: %v", err)
	}
	if len(dates) == 0 {
		t.Fatal("expected pickup dates within the horizon")
	}

	allowed := map[time.Weekday]bool{
		time.Sunday:   true,
		time.Monday:   true,
		time.Tuesday:  true,
		time.Saturday: true,
	}
	today := time.Now().Format("2006-01-02")
	horizon := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
	for _, d := range dates {
		if d.Date <= today {
			t.Fatalf("date %s is not after today %s", d.Date, today)
		}
		if d.Date > horizon {
			t.Fatalf("date %s is past the horizon %s", d.Date, horizon)
		}
		if day := parseTestDate(t, d.Date); !allowed[day.Weekday()] {
			t.Fatalf("weekday %v not allowed for pickup (date %s)", day.Weekday(), d.Date)
		}
	}
}

func TestAvailableDatesRailwayStationMondaysOnly(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	dates, err := svc.AvailableDates(AvailableDatesInput{Method: "RAILWAY_STATION"})
	if err != nil {
		t.Fatalf("available dates failed: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected exactly 2 Mondays in a 14-day horizon, got %d", len(dates))
	}
	for _, d := range dates {
		if day := parseTestDate(t, d.Date); day.Weekday() != time.Monday {
			t.Fatalf("expected Monday, got %v (date %s)", day.Weekday(), d.Date)
		}
		if d.Weekday != "lundi" {
			t.Fatalf("expected weekday label lundi, got %q", d.Weekday)
		}
	}
}

func TestAvailableDatesAddressZoneWeekday(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)

	lavaux := createTestZone(t, db, "VD", "Lavaux", 6)

	dates, err := svc.AvailableDates(AvailableDatesInput{Method: "ADDRESS", ZoneID: &lavaux.ID})
	if err != nil {
		t.Fatalf("available dates failed: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected exactly 2 Saturdays in a 14-day horizon, got %d", len(dates))
	}
	for _, d := range dates {
		if day := parseTestDate(t, d.Date); day.Weekday() != time.Saturday {
			t.Fatalf("expected Saturday, got %v (date %s)", day.Weekday(), d.Date)
		}
		if d.Weekday != "samedi" {
			t.Fatalf("expected weekday label samedi, got %q", d.Weekday)
		}
	}
}

func TestAvailableDatesAddressCantonFallback(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	vd, err := svc.AvailableDates(AvailableDatesInput{Method: "ADDRESS", Canton: "vd"})
	if err != nil {
		t.Fatalf("available dates failed: %v", err)
	}
	for _, d := range vd {
		if day := parseTestDate(t, d.Date); day.Weekday() != time.Saturday {
			t.Fatalf("VD fallback expected Saturday, got %v", day.Weekday())
		}
	}

	ge, err := svc.AvailableDates(AvailableDatesInput{Method: "ADDRESS", Canton: "GE"})
	if err != nil {
		t.Fatalf("available dates failed: %v", err)
	}
	for _, d := range ge {
		if day := parseTestDate(t, d.Date); day.Weekday() != time.Monday {
			t.Fatalf("GE fallback expected Monday, got %v", day.Weekday())
		}
	}

	none, err := svc.AvailableDates(AvailableDatesInput{Method: "ADDRESS", Canton: "ZH"})
	if err != nil {
		t.Fatalf("available dates failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no dates outside the served cantons, got %d", len(none))
	}
}

func TestAvailableDatesUnknownZone(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	missing := uint(999)
	if _, err := svc.AvailableDates(AvailableDatesInput{Method: "ADDRESS", ZoneID: &missing}); err != ErrZoneNotFound {
		t.Fatalf("expected ErrZoneNotFound, got %v", err)
	}
}

func TestAvailableDatesInvalidMethod(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	if _, err := svc.AvailableDates(AvailableDatesInput{Method: "DRONE"}); err != ErrDeliveryMethodInvalid {
		t.Fatalf("expected ErrDeliveryMethodInvalid, got %v", err)
	}
}

func TestEvaluateCostPickupAndStationAlwaysFree(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	for _, method := range []string{"PICKUP", "RAILWAY_STATION"} {
		result, err := svc.EvaluateCost(CostInput{Method: method, CartTotal: "5"})
		if err != nil {
			t.Fatalf("evaluate %s failed: %v", method, err)
		}
		if !result.IsValid {
			t.Fatalf("%s should always be valid", method)
		}
		if result.Cost.String() != "0.00" || result.MinimumOrder.String() != "0.00" {
			t.Fatalf("%s expected free with no minimum, got cost=%s minimum=%s", method, result.Cost, result.MinimumOrder)
		}
	}
}

func TestEvaluateCostAddressKnownCity(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)

	lavaux := createTestZone(t, db, "VD", "Lavaux", 6)
	createTestCity(t, db, lavaux.ID, "1000", "Lausanne")

	result, err := svc.EvaluateCost(CostInput{Method: "ADDRESS", PostalCode: "1000", CartTotal: "12.50"})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !result.IsValid {
		t.Fatal("known city should have no minimum order")
	}
	if result.Cost.String() != "0.00" || result.MinimumOrder.String() != "0.00" {
		t.Fatalf("expected free with no minimum, got cost=%s minimum=%s", result.Cost, result.MinimumOrder)
	}
	if !strings.Contains(result.Message, "Lausanne") {
		t.Fatalf("expected city name in message, got %q", result.Message)
	}
}

func TestEvaluateCostGenevaPostalRequiresMinimum(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)

	// The GE zone exists for Monday date planning, but Geneva postal
	// codes are not in the city table, so they carry the 200 CHF minimum.
	lavaux := createTestZone(t, db, "VD", "Lavaux", 6)
	createTestCity(t, db, lavaux.ID, "1000", "Lausanne")
	createTestZone(t, db, "GE", "Genève et environs", 1)

	result, err := svc.EvaluateCost(CostInput{Method: "ADDRESS", PostalCode: "1200", Canton: "GE", CartTotal: "150"})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result.IsValid {
		t.Fatal("Geneva postal code below minimum should not be valid")
	}
	if result.MinimumOrder.String() != "200.00" {
		t.Fatalf("expected minimum 200.00, got %s", result.MinimumOrder)
	}
	if !strings.Contains(result.Message, "50.00") {
		t.Fatalf("expected exact shortfall 50.00 in message, got %q", result.Message)
	}
}

func TestEvaluateCostAddressUnknownPostalBelowMinimum(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	result, err := svc.EvaluateCost(CostInput{Method: "ADDRESS", PostalCode: "9999", CartTotal: "150.5"})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if result.IsValid {
		t.Fatal("cart below minimum should not be valid")
	}
	if result.MinimumOrder.String() != "200.00" {
		t.Fatalf("expected minimum 200.00, got %s", result.MinimumOrder)
	}
	if !strings.Contains(result.Message, "49.50") {
		t.Fatalf("expected exact shortfall 49.50 in message, got %q", result.Message)
	}
}

func TestEvaluateCostAddressUnknownPostalAtMinimum(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	result, err := svc.EvaluateCost(CostInput{Method: "ADDRESS", PostalCode: "9999", CartTotal: "200"})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !result.IsValid {
		t.Fatal("cart at the minimum should be valid")
	}
	if result.Cost.String() != "0.00" {
		t.Fatalf("expected free delivery, got %s", result.Cost)
	}
}

func TestEvaluateCostInvalidCartTotal(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	for _, total := range []string{"", "abc", "-5"} {
		if _, err := svc.EvaluateCost(CostInput{Method: "ADDRESS", PostalCode: "9999", CartTotal: total}); err != ErrCartTotalInvalid {
			t.Fatalf("cart total %q: expected ErrCartTotalInvalid, got %v", total, err)
		}
	}
}

func TestListTimeSlotsPickupFixedSet(t *testing.T) {
	svc, _ := setupDeliveryServiceTest(t)

	slots, err := svc.ListTimeSlots("PICKUP", nil, nil)
	if err != nil {
		t.Fatalf("list time slots failed: %v", err)
	}
	if len(slots) != len(pickupTimeSlots) {
		t.Fatalf("expected the fixed pickup windows, got %d", len(slots))
	}
	if slots[0].StartTime != "09:00" {
		t.Fatalf("expected first pickup window at 09:00, got %s", slots[0].StartTime)
	}
}

func TestListTimeSlotsFiltersInactive(t *testing.T) {
	svc, db := setupDeliveryServiceTest(t)

	lavaux := createTestZone(t, db, "VD", "Lavaux", 6)
	saturday := 6
	active := models.DeliveryTimeSlot{ZoneID: &lavaux.ID, Weekday: &saturday, Label: "Matin", StartTime: "08:00", EndTime: "12:00", IsActive: true}
	inactive := models.DeliveryTimeSlot{ZoneID: &lavaux.ID, Weekday: &saturday, Label: "Soir", StartTime: "18:00", EndTime: "20:00", IsActive: false}
	if err := db.Create(&active).Error; err != nil {
		t.Fatalf("create slot failed: %v", err)
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("create slot failed: %v", err)
	}

	slots, err := svc.ListTimeSlots("ADDRESS", &lavaux.ID, &saturday)
	if err != nil {
		t.Fatalf("list time slots failed: %v", err)
	}
	if len(slots) != 1 || slots[0].Label != "Matin" {
		t.Fatalf("expected only the active slot, got %+v", slots)
	}
}
