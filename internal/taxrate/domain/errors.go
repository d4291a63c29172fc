package domain

import "errors"

var (
	ErrInvalidID          = errors.New("invalid_rate_id")
	ErrInvalidName        = errors.New("invalid_rate_name")
	ErrInvalidRatePercent = errors.New("invalid_rate_percent")
	ErrNotFound           = errors.New("rate_not_found")
	ErrZoneNotFound       = errors.New("rate_zone_not_found")
)
