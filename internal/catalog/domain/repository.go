package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id snowflake.ID) (*Product, error)
	// FindByIDs returns the products for the given IDs keyed by ID. Missing
	// products are simply absent from the map; callers decide how strict to be.
	FindByIDs(ctx context.Context, ids []snowflake.ID) (map[snowflake.ID]Product, error)
	List(ctx context.Context) ([]Product, error)
}
