package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/taxflow/internal/catalog/domain"
	"github.com/smallbiznis/taxflow/internal/observability/metrics"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"github.com/smallbiznis/taxflow/pkg/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Resolver taxzonedomain.Resolver
	Rates    taxratedomain.Repository
	Products catalogdomain.Repository
	Settings taxsettingsdomain.Service
	Metrics  *metrics.Metrics
}

type Service struct {
	resolver taxzonedomain.Resolver
	rates    taxratedomain.Repository
	products catalogdomain.Repository
	settings taxsettingsdomain.Service
	metrics  *metrics.Metrics
}

func NewService(p serviceParams) taxenginedomain.Service {
	return &Service{
		resolver: p.Resolver,
		rates:    p.Rates,
		products: p.Products,
		settings: p.Settings,
		metrics:  p.Metrics,
	}
}

func (s *Service) Calculate(ctx context.Context, req taxenginedomain.CalculationRequest) (*taxenginedomain.Result, error) {
	start := time.Now()

	result, err := s.calculate(ctx, req)
	s.metrics.CalculationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.CalculationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.CalculationsTotal.WithLabelValues("ok").Inc()

	log.L(ctx).Debug("tax calculated",
		zap.String("subtotal", result.Subtotal.String()),
		zap.String("tax_amount", result.TaxAmount.String()),
		zap.Int("rules_applied", len(result.TaxDetails)),
	)
	return result, nil
}

func (s *Service) calculate(ctx context.Context, req taxenginedomain.CalculationRequest) (*taxenginedomain.Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	zone, err := s.resolver.Resolve(ctx, req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	var zoneID *snowflake.ID
	if zone != nil {
		zoneID = &zone.ID
	}

	rules, err := s.rates.FindApplicable(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	items, err := s.annotateItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	result := Compute(items, req.ShippingCost, req.CouponDiscount, rules, *settings)
	if zone != nil {
		code := zone.ID.String()
		result.ZoneID = &code
	}
	return &result, nil
}

// annotateItems attaches each line's product category from the catalog.
// Every referenced product must exist.
func (s *Service) annotateItems(ctx context.Context, inputs []taxenginedomain.ItemInput) ([]taxenginedomain.LineItem, error) {
	ids := make([]snowflake.ID, 0, len(inputs))
	for _, in := range inputs {
		id, err := snowflake.ParseString(strings.TrimSpace(in.ProductID))
		if err != nil {
			return nil, catalogdomain.ErrProductNotFound
		}
		ids = append(ids, id)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]taxenginedomain.LineItem, 0, len(inputs))
	for i, in := range inputs {
		product, ok := products[ids[i]]
		if !ok {
			return nil, catalogdomain.ErrProductNotFound
		}
		items = append(items, taxenginedomain.LineItem{
			ProductID: ids[i],
			UnitPrice: in.Price,
			Quantity:  in.Quantity,
			Category:  product.Category,
		})
	}
	return items, nil
}

func validateRequest(req taxenginedomain.CalculationRequest) error {
	if len(req.Items) == 0 {
		return taxenginedomain.ErrNoItems
	}
	if !req.ShippingAddress.HasCountry() {
		return taxenginedomain.ErrMissingAddress
	}
	if req.ShippingCost.IsNegative() || req.CouponDiscount.IsNegative() {
		return taxenginedomain.ErrInvalidAmount
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return taxenginedomain.ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return taxenginedomain.ErrInvalidAmount
		}
	}
	return nil
}
