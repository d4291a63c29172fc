package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
)

// ItemInput is one cart line as received from the caller. The category is
// looked up from the catalog before the computation runs.
type ItemInput struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// CalculationRequest is the engine's external contract.
type CalculationRequest struct {
	Items           []ItemInput           `json:"items"`
	ShippingAddress taxzonedomain.Address `json:"shipping_address"`
	ShippingCost    decimal.Decimal       `json:"shipping_cost"`
	CouponDiscount  decimal.Decimal       `json:"coupon_discount"`
}

// LineItem is a cart line annotated with its resolved product category.
type LineItem struct {
	ProductID snowflake.ID
	UnitPrice decimal.Decimal
	Quantity  int
	Category  string
}

func (i LineItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TaxDetail is one applied rule's contribution. Amounts stay unrounded so
// their sum matches the total before final rounding.
type TaxDetail struct {
	RuleID        snowflake.ID    `json:"rule_id,string"`
	Name          string          `json:"name"`
	RatePercent   decimal.Decimal `json:"rate_percent"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	IsCompound    bool            `json:"is_compound"`
}

type Result struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TaxDetails    []TaxDetail     `json:"tax_details"`
	ZoneID        *string         `json:"zone_id,omitempty"`
}
