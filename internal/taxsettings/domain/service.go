package domain

import "context"

type Service interface {
	// Current returns the effective settings, falling back to deployment
	// defaults when no row has been stored yet.
	Current(ctx context.Context) (*TaxSettings, error)
	Update(ctx context.Context, req UpdateRequest) (*TaxSettings, error)
}

// UpdateRequest carries a partial settings change. Only non-nil fields are
// applied; every settable field is listed here explicitly.
type UpdateRequest struct {
	PricesIncludeTax    *bool   `json:"prices_include_tax,omitempty"`
	CalculateTaxBasedOn *string `json:"calculate_tax_based_on,omitempty"`
	ShippingTaxClass    *string `json:"shipping_tax_class,omitempty"`
	RoundTaxAtSubtotal  *bool   `json:"round_tax_at_subtotal,omitempty"`
}
