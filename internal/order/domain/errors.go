package domain

import "errors"

var (
	ErrInvalidID = errors.New("invalid_order_id")
	ErrNotFound  = errors.New("order_not_found")
)
