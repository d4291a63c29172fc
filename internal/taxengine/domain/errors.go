package domain

import "errors"

var (
	ErrNoItems         = errors.New("no_line_items")
	ErrMissingAddress  = errors.New("missing_shipping_address")
	ErrInvalidQuantity = errors.New("invalid_item_quantity")
	ErrInvalidAmount   = errors.New("invalid_amount")
)
