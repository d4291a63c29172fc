package domain

import "context"

type Service interface {
	// Calculate resolves the jurisdiction for the request's address, fetches
	// the applicable rules and settings, and computes the tax breakdown.
	// A region with no matching zone or rules yields a zero-tax result.
	Calculate(ctx context.Context, req CalculationRequest) (*Result, error)
}
