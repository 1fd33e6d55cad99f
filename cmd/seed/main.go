package main

import (
	"time"

	"github.com/lepanier/lepanier-api/internal/config"
	"github.com/lepanier/lepanier-api/internal/logger"
	"github.com/lepanier/lepanier-api/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedZonesAndCities(stdLog)
	seedStations(stdLog)
	seedStores(stdLog)
	seedTimeSlots(stdLog)
	seedCatalog(stdLog)

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to ensure default admin: %v", err)
	}

	stdLog.Printf("Seeding done")
}

type stdPrinter interface {
	Printf(format string, v ...interface{})
}

func seedZonesAndCities(stdLog stdPrinter) {
	// Vaud delivers on Saturday, Geneva on Monday.
	zones := []models.DeliveryZone{
		{Canton: "VD", Name: "Lavaux et Riviera", AllowedWeekday: int(time.Saturday)},
		{Canton: "GE", Name: "Genève et environs", AllowedWeekday: int(time.Monday)},
	}
	zoneIDs := map[string]uint{}
	for _, zone := range zones {
		var existing models.DeliveryZone
		if err := models.DB.Where("canton = ? AND name = ?", zone.Canton, zone.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&zone).Error; err != nil {
				stdLog.Printf("Failed to create zone %s: %v", zone.Name, err)
				continue
			}
			stdLog.Printf("Created zone: %s", zone.Name)
			zoneIDs[zone.Canton] = zone.ID
		} else {
			zoneIDs[zone.Canton] = existing.ID
		}
	}

	// Only Vaud postal codes are served without a minimum order. Geneva
	// codes stay out of delivery_cities on purpose: an unlisted code gets
	// the 200 CHF minimum, and the GE zone only drives the Monday canton
	// fallback for dates.
	cities := []models.DeliveryCity{
		{ZoneID: zoneIDs["VD"], PostalCode: "1000", Name: "Lausanne"},
		{ZoneID: zoneIDs["VD"], PostalCode: "1009", Name: "Pully"},
		{ZoneID: zoneIDs["VD"], PostalCode: "1096", Name: "Cully"},
		{ZoneID: zoneIDs["VD"], PostalCode: "1800", Name: "Vevey"},
		{ZoneID: zoneIDs["VD"], PostalCode: "1820", Name: "Montreux"},
	}
	for _, city := range cities {
		if city.ZoneID == 0 {
			continue
		}
		var existing models.DeliveryCity
		if err := models.DB.Where("zone_id = ? AND postal_code = ? AND name = ?", city.ZoneID, city.PostalCode, city.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&city).Error; err != nil {
				stdLog.Printf("Failed to create city %s: %v", city.Name, err)
			} else {
				stdLog.Printf("Created city: %s (%s)", city.Name, city.PostalCode)
			}
		}
	}
}

func seedStations(stdLog stdPrinter) {
	stations := []models.RailwayStation{
		{City: "Lausanne", Name: "Gare de Lausanne", MeetingPoint: "Main hall, under the clock", IsActive: true},
		{City: "Genève", Name: "Genève-Cornavin", MeetingPoint: "Place de Cornavin exit", IsActive: true},
		{City: "Vevey", Name: "Gare de Vevey", MeetingPoint: "Platform 1 kiosk", IsActive: true},
	}
	for _, station := range stations {
		var existing models.RailwayStation
		if err := models.DB.Where("name = ?", station.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&station).Error; err != nil {
				stdLog.Printf("Failed to create station %s: %v", station.Name, err)
			} else {
				stdLog.Printf("Created station: %s", station.Name)
			}
		}
	}
}

func seedStores(stdLog stdPrinter) {
	stores := []models.Store{
		{Name: "Le Panier Vevey", Address: "Rue du Simplon 12", City: "Vevey", IsActive: true},
		{Name: "Le Panier Lausanne", Address: "Avenue de la Gare 4", City: "Lausanne", IsActive: true},
	}
	for _, store := range stores {
		var existing models.Store
		if err := models.DB.Where("name = ?", store.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&store).Error; err != nil {
				stdLog.Printf("Failed to create store %s: %v", store.Name, err)
			} else {
				stdLog.Printf("Created store: %s", store.Name)
			}
		}
	}
}

func seedTimeSlots(stdLog stdPrinter) {
	slots := []models.DeliveryTimeSlot{
		{Label: "Morning", StartTime: "08:00", EndTime: "12:00", IsActive: true},
		{Label: "Afternoon", StartTime: "13:30", EndTime: "17:30", IsActive: true},
		{Label: "Evening", StartTime: "17:30", EndTime: "20:00", IsActive: true},
	}
	for _, slot := range slots {
		var existing models.DeliveryTimeSlot
		if err := models.DB.Where("label = ? AND zone_id IS NULL", slot.Label).First(&existing).Error; err != nil {
			if err := models.DB.Create(&slot).Error; err != nil {
				stdLog.Printf("Failed to create time slot %s: %v", slot.Label, err)
			} else {
				stdLog.Printf("Created time slot: %s", slot.Label)
			}
		}
	}
}

func seedCatalog(stdLog stdPrinter) {
	categories := []models.Category{
		{Slug: "legumes", Name: "Légumes", Description: "Seasonal vegetables from local farms", SortOrder: 1, IsActive: true},
		{Slug: "fruits", Name: "Fruits", Description: "Fresh fruit, picked ripe", SortOrder: 2, IsActive: true},
		{Slug: "epicerie", Name: "Épicerie", Description: "Pantry staples and preserves", SortOrder: 3, IsActive: true},
	}
	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
				continue
			}
			stdLog.Printf("Created category: %s", cat.Slug)
			categoryIDs[cat.Slug] = cat.ID
		} else {
			categoryIDs[cat.Slug] = existing.ID
		}
	}

	products := []models.Product{
		{
			CategoryID:  categoryIDs["legumes"],
			Slug:        "panier-legumes-grand",
			Name:        "Grand panier de légumes",
			Description: "A week of seasonal vegetables for a family of four",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(42)),
			Unit:        "piece",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["legumes"],
			Slug:        "panier-legumes-petit",
			Name:        "Petit panier de légumes",
			Description: "Seasonal vegetables for two",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(26)),
			Unit:        "piece",
			SortOrder:   2,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["fruits"],
			Slug:        "pommes-gala",
			Name:        "Pommes Gala",
			Description: "Crisp Gala apples from Lavaux orchards",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(4.5)),
			Unit:        "kg",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["epicerie"],
			Slug:        "huile-colza",
			Name:        "Huile de colza pressée à froid",
			Description: "Cold-pressed rapeseed oil, 50cl bottle",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.9)),
			Unit:        "bottle",
			SortOrder:   1,
			IsActive:    true,
		},
	}
	for _, product := range products {
		if product.CategoryID == 0 {
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		}
	}
}
