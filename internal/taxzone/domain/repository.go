package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// ListAll returns every zone with its locations, ordered by creation
	// (ascending ID). The resolver depends on this ordering for its
	// deterministic tie-break.
	ListAll(ctx context.Context) ([]TaxZone, error)

	Create(ctx context.Context, zone *TaxZone) error
	FindByID(ctx context.Context, id snowflake.ID) (*TaxZone, error)
	Update(ctx context.Context, zone *TaxZone) error
	Delete(ctx context.Context, id snowflake.ID) error
}
