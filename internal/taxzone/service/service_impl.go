package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ZoneReferenceChecker reports whether anything still references a zone.
// The tax rate module provides the implementation.
type ZoneReferenceChecker interface {
	IsZoneReferenced(ctx context.Context, zoneID snowflake.ID) (bool, error)
}

type serviceParams struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     taxzonedomain.Repository
	RefCheck ZoneReferenceChecker `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	repo     taxzonedomain.Repository
	refCheck ZoneReferenceChecker
}

func NewService(p serviceParams) taxzonedomain.Service {
	return &Service{
		log:      p.Log.Named("taxzone.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		refCheck: p.RefCheck,
	}
}

func (s *Service) Create(ctx context.Context, req taxzonedomain.CreateRequest) (*taxzonedomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, taxzonedomain.ErrInvalidName
	}

	now := time.Now().UTC()
	zone := &taxzonedomain.TaxZone{
		ID:          s.genID.Generate(),
		Code:        slug.Make(name),
		Name:        name,
		Description: trimOptional(req.Description),
		Locations:   buildLocations(s.genID, 0, req.Locations),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range zone.Locations {
		zone.Locations[i].ZoneID = zone.ID
	}

	if err := zone.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, zone); err != nil {
		return nil, err
	}

	resp := toResponse(zone)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]taxzonedomain.Response, error) {
	zones, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]taxzonedomain.Response, 0, len(zones))
	for i := range zones {
		resp = append(resp, toResponse(&zones[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*taxzonedomain.Response, error) {
	zoneID, err := parseID(id)
	if err != nil {
		return nil, taxzonedomain.ErrInvalidID
	}

	zone, err := s.repo.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, taxzonedomain.ErrNotFound
	}

	resp := toResponse(zone)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req taxzonedomain.UpdateRequest) (*taxzonedomain.Response, error) {
	zoneID, err := parseID(req.ID)
	if err != nil {
		return nil, taxzonedomain.ErrInvalidID
	}

	zone, err := s.repo.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, taxzonedomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, taxzonedomain.ErrInvalidName
		}
		zone.Name = name
	}
	if req.Description != nil {
		zone.Description = trimOptional(req.Description)
	}
	if req.Locations != nil {
		zone.Locations = buildLocations(s.genID, zone.ID, *req.Locations)
	}

	zone.UpdatedAt = time.Now().UTC()
	if err := zone.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, zone); err != nil {
		return nil, err
	}

	resp := toResponse(zone)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	zoneID, err := parseID(id)
	if err != nil {
		return taxzonedomain.ErrInvalidID
	}

	zone, err := s.repo.FindByID(ctx, zoneID)
	if err != nil {
		return err
	}
	if zone == nil {
		return taxzonedomain.ErrNotFound
	}

	if s.refCheck != nil {
		referenced, err := s.refCheck.IsZoneReferenced(ctx, zoneID)
		if err != nil {
			return err
		}
		if referenced {
			return taxzonedomain.ErrZoneInUse
		}
	}

	return s.repo.Delete(ctx, zoneID)
}

func buildLocations(genID *snowflake.Node, zoneID snowflake.ID, reqs []taxzonedomain.LocationRequest) []taxzonedomain.ZoneLocation {
	locations := make([]taxzonedomain.ZoneLocation, 0, len(reqs))
	for i, loc := range reqs {
		states := make([]string, 0, len(loc.States))
		for _, st := range loc.States {
			st = strings.ToUpper(strings.TrimSpace(st))
			if st != "" {
				states = append(states, st)
			}
		}
		locations = append(locations, taxzonedomain.ZoneLocation{
			ID:                genID.Generate(),
			ZoneID:            zoneID,
			Country:           strings.ToUpper(strings.TrimSpace(loc.Country)),
			States:            states,
			PostalCodePattern: strings.TrimSpace(loc.PostalCodePattern),
			Position:          i,
			CreatedAt:         time.Now().UTC(),
		})
	}
	return locations
}

func toResponse(zone *taxzonedomain.TaxZone) taxzonedomain.Response {
	locations := make([]taxzonedomain.LocationResponse, 0, len(zone.Locations))
	for _, loc := range zone.Locations {
		locations = append(locations, taxzonedomain.LocationResponse{
			Country:           loc.Country,
			States:            loc.States,
			PostalCodePattern: loc.PostalCodePattern,
		})
	}
	return taxzonedomain.Response{
		ID:          zone.ID.String(),
		Code:        zone.Code,
		Name:        zone.Name,
		Description: zone.Description,
		Locations:   locations,
		CreatedAt:   zone.CreatedAt,
		UpdatedAt:   zone.UpdatedAt,
	}
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
