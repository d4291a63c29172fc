package domain

import "context"

type Repository interface {
	// Find returns the stored settings row, or nil when none has been saved.
	Find(ctx context.Context) (*TaxSettings, error)
	Save(ctx context.Context, settings *TaxSettings) error
}
