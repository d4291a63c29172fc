package domain

import "context"

type Service interface {
	Generate(ctx context.Context, req Request) (*Report, error)
}
