package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Disable(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	ZoneID  string
	Active  *bool
	SortBy  string
	OrderBy string
}

type CreateRequest struct {
	Name              string          `json:"name"`
	RatePercent       decimal.Decimal `json:"rate_percent"`
	ZoneID            *string         `json:"zone_id,omitempty"`
	ProductCategories []string        `json:"product_categories,omitempty"`
	IsCompound        bool            `json:"is_compound"`
	Priority          int             `json:"priority"`
	Active            *bool           `json:"active,omitempty"`
}

type UpdateRequest struct {
	ID                string           `json:"id"`
	Name              *string          `json:"name,omitempty"`
	RatePercent       *decimal.Decimal `json:"rate_percent,omitempty"`
	ZoneID            *string          `json:"zone_id,omitempty"`
	ProductCategories *[]string        `json:"product_categories,omitempty"`
	IsCompound        *bool            `json:"is_compound,omitempty"`
	Priority          *int             `json:"priority,omitempty"`
	Active            *bool            `json:"active,omitempty"`
}

type Response struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	RatePercent       decimal.Decimal `json:"rate_percent"`
	ZoneID            *string         `json:"zone_id,omitempty"`
	ProductCategories []string        `json:"product_categories"`
	IsCompound        bool            `json:"is_compound"`
	Priority          int             `json:"priority"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
