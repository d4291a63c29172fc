package domain

import "errors"

var (
	ErrInvalidName     = errors.New("invalid_product_name")
	ErrInvalidPrice    = errors.New("invalid_product_price")
	ErrProductNotFound = errors.New("product_not_found")
)
