package domain

import "errors"

var (
	ErrInvalidBasis         = errors.New("invalid_tax_basis")
	ErrInvalidShippingClass = errors.New("invalid_shipping_tax_class")
)
