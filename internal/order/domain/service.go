package domain

import (
	"context"

	"github.com/shopspring/decimal"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
)

type Service interface {
	// Checkout computes tax for the cart and persists the resulting order
	// with its frozen tax breakdown.
	Checkout(ctx context.Context, req CheckoutRequest) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	// List returns orders newest first. A positive limit caps the page size;
	// zero or negative returns everything.
	List(ctx context.Context, limit int) ([]Order, error)
}

type CheckoutRequest struct {
	Items           []taxenginedomain.ItemInput `json:"items"`
	ShippingAddress taxzonedomain.Address       `json:"shipping_address"`
	ShippingCost    decimal.Decimal             `json:"shipping_cost"`
	CouponDiscount  decimal.Decimal             `json:"coupon_discount"`
}
