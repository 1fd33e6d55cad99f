package worker

import (
	"strings"
	"testing"
	"time"

	"github.com/lepanier/lepanier-api/internal/constants"
	"github.com/lepanier/lepanier-api/internal/models"
)

func TestDescribeDeliveryNilOrder(t *testing.T) {
	if got := describeDelivery(nil); got != "" {
		t.Fatalf("expected empty description for nil order, got %q", got)
	}
}

func TestDescribeDeliveryPickupWithStore(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	order := &models.Order{
		DeliveryType: constants.DeliveryTypePickup,
		DeliveryDate: &date,
		PickupDelivery: &models.PickupDelivery{
			Store: &models.Store{Name: "Le Panier Vevey"},
		},
	}

	got := describeDelivery(order)
	if !strings.Contains(got, "Le Panier Vevey") || !strings.Contains(got, "2025-03-10") {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestDescribeDeliveryAddress(t *testing.T) {
	date := time.Date(2025, 3, 8, 0, 0, 0, 0, time.Local)
	order := &models.Order{
		DeliveryType: constants.DeliveryTypeAddress,
		DeliveryDate: &date,
		AddressDelivery: &models.AddressDelivery{
			Street:     "Rue du Bourg",
			House:      "12",
			City:       "Lausanne",
			PostalCode: "1000",
		},
	}

	got := describeDelivery(order)
	for _, want := range []string{"Rue du Bourg", "12", "1000", "Lausanne", "2025-03-08"} {
		if !strings.Contains(got, want) {
			t.Fatalf("description %q missing %q", got, want)
		}
	}
}

func TestDescribeDeliveryStationWithoutDetail(t *testing.T) {
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.Local)
	order := &models.Order{
		DeliveryType: constants.DeliveryTypeRailwayStation,
		DeliveryDate: &date,
	}

	got := describeDelivery(order)
	if !strings.Contains(got, "Railway station") || !strings.Contains(got, "2025-03-03") {
		t.Fatalf("unexpected description %q", got)
	}
}
