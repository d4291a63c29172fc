// Package domain contains the tax rate models and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TaxRate is a named percentage rule. A nil ZoneID marks a global rule that
// applies regardless of the resolved zone. An empty category set applies to
// every category. Compound rates tax the running tax total of earlier rates.
type TaxRate struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Name string       `gorm:"type:text;not null"`

	RatePercent decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	ZoneID      *snowflake.ID   `gorm:"index"`

	ProductCategories datatypes.JSONSlice[string] `gorm:"type:text"`

	IsCompound bool `gorm:"not null;default:false"`
	Priority   int  `gorm:"not null;default:0"`
	Active     bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TaxRate) TableName() string { return "tax_rates" }

func (t *TaxRate) Validate() error {
	if t.Name == "" {
		return ErrInvalidName
	}
	if t.RatePercent.IsNegative() || t.RatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidRatePercent
	}
	return nil
}

// AppliesToCategory reports whether the rate covers the given category.
// An empty category set covers everything.
func (t *TaxRate) AppliesToCategory(category string) bool {
	if len(t.ProductCategories) == 0 {
		return true
	}
	for _, c := range t.ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}
