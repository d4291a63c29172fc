package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/taxflow/internal/config"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     taxsettingsdomain.Repository
	Defaults *config.EngineDefaultsHolder
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	repo     taxsettingsdomain.Repository
	defaults *config.EngineDefaultsHolder
}

func NewService(p serviceParams) taxsettingsdomain.Service {
	return &Service{
		log:      p.Log.Named("taxsettings.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) Current(ctx context.Context) (*taxsettingsdomain.TaxSettings, error) {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	def := s.defaults.Current()
	return &taxsettingsdomain.TaxSettings{
		PricesIncludeTax:    def.PricesIncludeTax,
		CalculateTaxBasedOn: def.CalculateTaxBasedOn,
		ShippingTaxClass:    def.ShippingTaxClass,
		RoundTaxAtSubtotal:  def.RoundTaxAtSubtotal,
	}, nil
}

func (s *Service) Update(ctx context.Context, req taxsettingsdomain.UpdateRequest) (*taxsettingsdomain.TaxSettings, error) {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		def := s.defaults.Current()
		now := time.Now().UTC()
		settings = &taxsettingsdomain.TaxSettings{
			ID:                  s.genID.Generate(),
			PricesIncludeTax:    def.PricesIncludeTax,
			CalculateTaxBasedOn: def.CalculateTaxBasedOn,
			ShippingTaxClass:    def.ShippingTaxClass,
			RoundTaxAtSubtotal:  def.RoundTaxAtSubtotal,
			CreatedAt:           now,
		}
	}

	if req.PricesIncludeTax != nil {
		settings.PricesIncludeTax = *req.PricesIncludeTax
	}
	if req.CalculateTaxBasedOn != nil {
		settings.CalculateTaxBasedOn = strings.ToLower(strings.TrimSpace(*req.CalculateTaxBasedOn))
	}
	if req.ShippingTaxClass != nil {
		settings.ShippingTaxClass = strings.ToLower(strings.TrimSpace(*req.ShippingTaxClass))
	}
	if req.RoundTaxAtSubtotal != nil {
		settings.RoundTaxAtSubtotal = *req.RoundTaxAtSubtotal
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
