package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Order statuses. Cancelled and refunded orders are excluded from reports.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

// Order is a finalized checkout with its tax breakdown persisted alongside.
// The shipping address is stored flat so reports can re-resolve the zone.
type Order struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id,string"`
	Status string       `gorm:"index" json:"status"`

	ShipCountry    string `json:"ship_country"`
	ShipState      string `json:"ship_state"`
	ShipPostalCode string `json:"ship_postal_code"`

	Subtotal       decimal.Decimal `gorm:"type:numeric(20,8)" json:"subtotal"`
	ShippingCost   decimal.Decimal `gorm:"type:numeric(20,8)" json:"shipping_cost"`
	CouponDiscount decimal.Decimal `gorm:"type:numeric(20,8)" json:"coupon_discount"`
	TaxableAmount  decimal.Decimal `gorm:"type:numeric(20,8)" json:"taxable_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(20,8)" json:"tax_amount"`
	Total          decimal.Decimal `gorm:"type:numeric(20,8)" json:"total"`

	Lines      []OrderLine      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	TaxDetails []OrderTaxDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"tax_details"`

	PlacedAt  time.Time `gorm:"index" json:"placed_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderLine struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id,string"`
	OrderID   snowflake.ID    `gorm:"index" json:"order_id,string"`
	ProductID snowflake.ID    `json:"product_id,string"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(20,8)" json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,8)" json:"amount"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}

// OrderTaxDetail is a rule contribution frozen at checkout time. Reports
// aggregate per rule from these rows, not from the live rate table.
type OrderTaxDetail struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id,string"`
	OrderID       snowflake.ID    `gorm:"index" json:"order_id,string"`
	RuleID        snowflake.ID    `gorm:"index" json:"rule_id,string"`
	Name          string          `json:"name"`
	RatePercent   decimal.Decimal `gorm:"type:numeric(7,4)" json:"rate_percent"`
	TaxableAmount decimal.Decimal `gorm:"type:numeric(20,8)" json:"taxable_amount"`
	TaxAmount     decimal.Decimal `gorm:"type:numeric(20,8)" json:"tax_amount"`
	IsCompound    bool            `json:"is_compound"`
}

func (OrderTaxDetail) TableName() string {
	return "order_tax_details"
}
