package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Product is the minimal catalog record the tax engine needs: a category for
// rate scoping and a unit price for checkout line amounts.
type Product struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id,string"`
	Name      string          `json:"name"`
	Category  string          `gorm:"index" json:"category"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(20,8)" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
