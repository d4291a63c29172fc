package domain

import "errors"

var (
	ErrMissingDateRange = errors.New("missing_date_range")
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrRangeTooWide     = errors.New("date_range_too_wide")
)
