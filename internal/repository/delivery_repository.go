package repository

import (
	"errors"
	"strings"

	"github.com/lepanier/lepanier-api/internal/models"

	"gorm.io/gorm"
)

// DeliveryRepository is the data-access interface for delivery reference
// data: zones, cities, time slots, railway stations and pickup stores.
type DeliveryRepository interface {
	ListZones() ([]models.DeliveryZone, error)
	GetZoneByID(id uint) (*models.DeliveryZone, error)
	FindCityByPostalCode(postalCode string) (*models.DeliveryCity, error)
	ListCitiesByZone(zoneID uint) ([]models.DeliveryCity, error)
	ListTimeSlots(filter TimeSlotFilter) ([]models.DeliveryTimeSlot, error)
	ListStations() ([]models.RailwayStation, error)
	GetStationByID(id uint) (*models.RailwayStation, error)
	ListStores() ([]models.Store, error)
	GetStoreByID(id uint) (*models.Store, error)
}

// GormDeliveryRepository is the GORM implementation.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository builds a delivery reference-data repository.
func NewDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// ListZones returns every delivery zone.
func (r *GormDeliveryRepository) ListZones() ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	if err := r.db.Order("id asc").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// GetZoneByID fetches a zone by id.
func (r *GormDeliveryRepository) GetZoneByID(id uint) (*models.DeliveryZone, error) {
	var zone models.DeliveryZone
	if err := r.db.First(&zone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &zone, nil
}

// FindCityByPostalCode returns the first city matching the postal code,
// with its zone preloaded. A miss returns (nil, nil): most postal codes
// are outside the delivery area and that is a normal outcome.
func (r *GormDeliveryRepository) FindCityByPostalCode(postalCode string) (*models.DeliveryCity, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return nil, nil
	}
	var city models.DeliveryCity
	if err := r.db.Preload("Zone").Where("postal_code = ?", postalCode).Order("id asc").First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

// ListCitiesByZone returns the cities of one zone.
func (r *GormDeliveryRepository) ListCitiesByZone(zoneID uint) ([]models.DeliveryCity, error) {
	var cities []models.DeliveryCity
	if err := r.db.Where("zone_id = ?", zoneID).Order("postal_code asc").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// ListTimeSlots returns time slots matching the filter.
func (r *GormDeliveryRepository) ListTimeSlots(filter TimeSlotFilter) ([]models.DeliveryTimeSlot, error) {
	query := r.db.Model(&models.DeliveryTimeSlot{})
	if filter.ZoneID != nil {
		query = query.Where("zone_id = ? OR zone_id IS NULL", *filter.ZoneID)
	}
	if filter.Weekday != nil {
		query = query.Where("weekday = ? OR weekday IS NULL", *filter.Weekday)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	var slots []models.DeliveryTimeSlot
	if err := query.Order("start_time asc, id asc").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// ListStations returns active railway stations.
func (r *GormDeliveryRepository) ListStations() ([]models.RailwayStation, error) {
	var stations []models.RailwayStation
	if err := r.db.Where("is_active = ?", true).Order("city asc, id asc").Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

// GetStationByID fetches a railway station by id.
func (r *GormDeliveryRepository) GetStationByID(id uint) (*models.RailwayStation, error) {
	var station models.RailwayStation
	if err := r.db.First(&station, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &station, nil
}

// ListStores returns active pickup stores.
func (r *GormDeliveryRepository) ListStores() ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Where("is_active = ?", true).Order("city asc, id asc").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// GetStoreByID fetches a store by id.
func (r *GormDeliveryRepository) GetStoreByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}
