package domain

import (
	"context"
	"time"
)

// Resolver maps a destination address to the single applicable zone.
// A nil zone with a nil error means no zone matches; global rates still apply.
type Resolver interface {
	Resolve(ctx context.Context, addr Address) (*TaxZone, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type LocationRequest struct {
	Country           string   `json:"country"`
	States            []string `json:"states,omitempty"`
	PostalCodePattern string   `json:"postal_code_pattern,omitempty"`
}

type CreateRequest struct {
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Locations   []LocationRequest `json:"locations"`
}

type UpdateRequest struct {
	ID          string             `json:"id"`
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Locations   *[]LocationRequest `json:"locations,omitempty"`
}

type LocationResponse struct {
	Country           string   `json:"country"`
	States            []string `json:"states,omitempty"`
	PostalCodePattern string   `json:"postal_code_pattern,omitempty"`
}

type Response struct {
	ID          string             `json:"id"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Locations   []LocationResponse `json:"locations"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
