package domain

import "errors"

var (
	ErrInvalidID      = errors.New("invalid_zone_id")
	ErrInvalidName    = errors.New("invalid_zone_name")
	ErrInvalidCountry = errors.New("invalid_zone_country")
	ErrNoLocations    = errors.New("zone_requires_locations")
	ErrNotFound       = errors.New("zone_not_found")
	ErrZoneInUse      = errors.New("zone_in_use")
)
