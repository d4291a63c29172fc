package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tax base address selection.
const (
	BasisShipping = "shipping"
	BasisBilling  = "billing"
)

// TaxSettings is the store-wide engine configuration. A single row is kept;
// when none exists the engine falls back to the deployment defaults.
type TaxSettings struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id,string"`
	PricesIncludeTax    bool         `json:"prices_include_tax"`
	CalculateTaxBasedOn string       `json:"calculate_tax_based_on"`
	ShippingTaxClass    string       `json:"shipping_tax_class"`
	RoundTaxAtSubtotal  bool         `json:"round_tax_at_subtotal"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

func (TaxSettings) TableName() string {
	return "tax_settings"
}

func (s *TaxSettings) Validate() error {
	switch s.CalculateTaxBasedOn {
	case BasisShipping, BasisBilling:
	default:
		return ErrInvalidBasis
	}
	if s.ShippingTaxClass == "" {
		return ErrInvalidShippingClass
	}
	return nil
}
