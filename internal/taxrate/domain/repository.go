package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// FindApplicable returns every active rate scoped to the given zone or to
	// no zone at all, ordered by priority then ID so equal-priority rates keep
	// a stable evaluation order. A nil zoneID returns only global rates.
	// Callers re-fetch per calculation; results are never cached.
	FindApplicable(ctx context.Context, zoneID *snowflake.ID) ([]TaxRate, error)

	Create(ctx context.Context, rate *TaxRate) error
	FindByID(ctx context.Context, id snowflake.ID) (*TaxRate, error)
	List(ctx context.Context, filter ListRequest) ([]TaxRate, error)
	Update(ctx context.Context, rate *TaxRate) error
	CountByZone(ctx context.Context, zoneID snowflake.ID) (int64, error)
}
