package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request is the report query. Both dates are required; EndDate is
// inclusive through the end of its day. ZoneID optionally restricts the
// report to orders whose shipping address resolves to that zone.
type Request struct {
	StartDate time.Time
	EndDate   time.Time
	ZoneID    *string
}

type Summary struct {
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	OrderCount    int             `json:"order_count"`
}

type RateSummary struct {
	RuleID     string          `json:"rule_id"`
	Name       string          `json:"name"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	OrderCount int             `json:"order_count"`
}

type CountrySummary struct {
	Country     string          `json:"country"`
	OrderCount  int             `json:"order_count"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
}

type Report struct {
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Summary   Summary          `json:"summary"`
	ByRate    []RateSummary    `json:"by_rate"`
	ByCountry []CountrySummary `json:"by_country"`
}
