// Package domain contains the tax zone models and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// TaxZone is a geographic jurisdiction used to select applicable tax rates.
// Zones are matched, never owned: rates reference them and historical orders
// re-derive membership through the resolver.
type TaxZone struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Code        string       `gorm:"type:text;not null;uniqueIndex"`
	Name        string       `gorm:"type:text;not null"`
	Description *string      `gorm:"type:text"`

	Locations []ZoneLocation `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TaxZone) TableName() string { return "tax_zones" }

// ZoneLocation is one geographic rule inside a zone. A location with a postal
// pattern matches at the highest precedence, one with states at the second,
// and a bare country at the third.
type ZoneLocation struct {
	ID     snowflake.ID `gorm:"primaryKey"`
	ZoneID snowflake.ID `gorm:"not null;index"`

	Country           string                      `gorm:"type:text;not null"`
	States            datatypes.JSONSlice[string] `gorm:"type:text"`
	PostalCodePattern string                      `gorm:"type:text"`

	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ZoneLocation) TableName() string { return "tax_zone_locations" }

// Address is the destination a calculation or report resolves against.
// State and PostalCode are optional.
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// HasCountry reports whether the address carries the one required field.
func (a Address) HasCountry() bool { return a.Country != "" }

func (z *TaxZone) Validate() error {
	if z.Name == "" {
		return ErrInvalidName
	}
	if len(z.Locations) == 0 {
		return ErrNoLocations
	}
	for _, loc := range z.Locations {
		if loc.Country == "" {
			return ErrInvalidCountry
		}
	}
	return nil
}
