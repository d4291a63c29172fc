package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     taxratedomain.Repository
	ZoneRepo taxzonedomain.Repository
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	repo     taxratedomain.Repository
	zoneRepo taxzonedomain.Repository
}

func NewService(p serviceParams) taxratedomain.Service {
	return &Service{
		log:      p.Log.Named("taxrate.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		zoneRepo: p.ZoneRepo,
	}
}

// NewZoneReferenceChecker exposes the rate repository as the zone module's
// reference check, so zones with attached rates cannot be deleted.
func NewZoneReferenceChecker(repo taxratedomain.Repository) *ZoneReferenceChecker {
	return &ZoneReferenceChecker{repo: repo}
}

type ZoneReferenceChecker struct {
	repo taxratedomain.Repository
}

func (c *ZoneReferenceChecker) IsZoneReferenced(ctx context.Context, zoneID snowflake.ID) (bool, error) {
	count, err := c.repo.CountByZone(ctx, zoneID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) Create(ctx context.Context, req taxratedomain.CreateRequest) (*taxratedomain.Response, error) {
	zoneID, err := s.resolveZoneID(ctx, req.ZoneID)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	rate := &taxratedomain.TaxRate{
		ID:                s.genID.Generate(),
		Name:              strings.TrimSpace(req.Name),
		RatePercent:       req.RatePercent,
		ZoneID:            zoneID,
		ProductCategories: normalizeCategories(req.ProductCategories),
		IsCompound:        req.IsCompound,
		Priority:          req.Priority,
		Active:            active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := rate.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rate); err != nil {
		return nil, err
	}

	resp := toResponse(rate)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req taxratedomain.ListRequest) ([]taxratedomain.Response, error) {
	rates, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := make([]taxratedomain.Response, 0, len(rates))
	for i := range rates {
		resp = append(resp, toResponse(&rates[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*taxratedomain.Response, error) {
	rateID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, taxratedomain.ErrInvalidID
	}

	rate, err := s.repo.FindByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, taxratedomain.ErrNotFound
	}

	resp := toResponse(rate)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req taxratedomain.UpdateRequest) (*taxratedomain.Response, error) {
	rateID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, taxratedomain.ErrInvalidID
	}

	rate, err := s.repo.FindByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, taxratedomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, taxratedomain.ErrInvalidName
		}
		rate.Name = name
	}
	if req.RatePercent != nil {
		rate.RatePercent = *req.RatePercent
	}
	if req.ZoneID != nil {
		zoneID, err := s.resolveZoneID(ctx, req.ZoneID)
		if err != nil {
			return nil, err
		}
		rate.ZoneID = zoneID
	}
	if req.ProductCategories != nil {
		rate.ProductCategories = normalizeCategories(*req.ProductCategories)
	}
	if req.IsCompound != nil {
		rate.IsCompound = *req.IsCompound
	}
	if req.Priority != nil {
		rate.Priority = *req.Priority
	}
	if req.Active != nil {
		rate.Active = *req.Active
	}

	rate.UpdatedAt = time.Now().UTC()
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rate); err != nil {
		return nil, err
	}

	resp := toResponse(rate)
	return &resp, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*taxratedomain.Response, error) {
	rateID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, taxratedomain.ErrInvalidID
	}

	rate, err := s.repo.FindByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, taxratedomain.ErrNotFound
	}

	rate.Active = false
	rate.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, rate); err != nil {
		return nil, err
	}

	resp := toResponse(rate)
	return &resp, nil
}

// resolveZoneID turns an optional request zone into a validated reference.
// An empty or absent value means a global rate.
func (s *Service) resolveZoneID(ctx context.Context, raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	zoneID, err := snowflake.ParseString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, taxratedomain.ErrZoneNotFound
	}

	zone, err := s.zoneRepo.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, taxratedomain.ErrZoneNotFound
	}
	return &zoneID, nil
}

func normalizeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func toResponse(rate *taxratedomain.TaxRate) taxratedomain.Response {
	var zoneID *string
	if rate.ZoneID != nil {
		id := rate.ZoneID.String()
		zoneID = &id
	}
	return taxratedomain.Response{
		ID:                rate.ID.String(),
		Name:              rate.Name,
		RatePercent:       rate.RatePercent,
		ZoneID:            zoneID,
		ProductCategories: rate.ProductCategories,
		IsCompound:        rate.IsCompound,
		Priority:          rate.Priority,
		Active:            rate.Active,
		CreatedAt:         rate.CreatedAt,
		UpdatedAt:         rate.UpdatedAt,
	}
}
