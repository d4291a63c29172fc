package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/taxflow/pkg/db/option"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id snowflake.ID) (*Order, error)
	// List returns orders newest first, lines and tax details preloaded.
	List(ctx context.Context, opts ...option.QueryOption) ([]Order, error)
	// FindInRange returns orders placed inside [start, end] whose status is
	// not in excludeStatuses, tax details preloaded, ordered by placed_at.
	FindInRange(ctx context.Context, start, end time.Time, excludeStatuses []string) ([]Order, error)
}
