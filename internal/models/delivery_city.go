package models

import "time"

// DeliveryCity maps a postal code to its delivery zone and a per-city
// free-delivery threshold. Postal codes are not unique across zones;
// lookups take the first match by id.
type DeliveryCity struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ZoneID        uint      `gorm:"index;not null" json:"zone_id"`
	PostalCode    string    `gorm:"type:varchar(10);index;not null" json:"postal_code"`
	Name          string    `gorm:"not null" json:"name"`
	FreeThreshold Money     `gorm:"type:decimal(20,2);not null;default:0" json:"free_threshold"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Zone DeliveryZone `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
}

// TableName sets the table name.
func (DeliveryCity) TableName() string {
	return "delivery_cities"
}
