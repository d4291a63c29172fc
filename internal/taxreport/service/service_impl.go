package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/taxflow/internal/config"
	"github.com/smallbiznis/taxflow/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	taxreportdomain "github.com/smallbiznis/taxflow/internal/taxreport/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"github.com/smallbiznis/taxflow/pkg/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

type serviceParams struct {
	fx.In

	Orders   orderdomain.Repository
	Resolver taxzonedomain.Resolver
	Defaults *config.EngineDefaultsHolder
	Metrics  *metrics.Metrics
}

type Service struct {
	orders   orderdomain.Repository
	resolver taxzonedomain.Resolver
	defaults *config.EngineDefaultsHolder
	metrics  *metrics.Metrics
}

func NewService(p serviceParams) taxreportdomain.Service {
	return &Service{
		orders:   p.Orders,
		resolver: p.Resolver,
		defaults: p.Defaults,
		metrics:  p.Metrics,
	}
}

func (s *Service) Generate(ctx context.Context, req taxreportdomain.Request) (*taxreportdomain.Report, error) {
	report, err := s.generate(ctx, req)
	if err != nil {
		s.metrics.ReportsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.ReportsTotal.WithLabelValues("ok").Inc()
	return report, nil
}

func (s *Service) generate(ctx context.Context, req taxreportdomain.Request) (*taxreportdomain.Report, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, taxreportdomain.ErrMissingDateRange
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, taxreportdomain.ErrInvalidDateRange
	}

	end := endOfDay(req.EndDate)
	maxDays := s.defaults.Current().ReportMaxRangeDays
	if maxDays > 0 && end.Sub(req.StartDate) > time.Duration(maxDays)*24*time.Hour {
		return nil, taxreportdomain.ErrRangeTooWide
	}

	var zoneFilter *snowflake.ID
	if req.ZoneID != nil && strings.TrimSpace(*req.ZoneID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(*req.ZoneID))
		if err != nil {
			return nil, taxzonedomain.ErrInvalidID
		}
		zoneFilter = &id
	}

	orders, err := s.orders.FindInRange(ctx, req.StartDate, end, []string{
		orderdomain.StatusCancelled,
		orderdomain.StatusRefunded,
	})
	if err != nil {
		return nil, err
	}

	summary := taxreportdomain.Summary{
		TotalTax:      decimal.Zero,
		TotalSales:    decimal.Zero,
		TaxPercentage: decimal.Zero,
	}
	byCountry := make(map[string]*taxreportdomain.CountrySummary)
	byRate := make(map[snowflake.ID]*taxreportdomain.RateSummary)

	for i := range orders {
		order := &orders[i]
		if order.TaxAmount.Sign() == 0 {
			continue
		}

		if zoneFilter != nil {
			match, err := s.orderInZone(ctx, order, *zoneFilter)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}

		summary.OrderCount++
		summary.TotalTax = summary.TotalTax.Add(order.TaxAmount)
		summary.TotalSales = summary.TotalSales.Add(order.Total)

		country := order.ShipCountry
		cs, ok := byCountry[country]
		if !ok {
			cs = &taxreportdomain.CountrySummary{
				Country:     country,
				TaxAmount:   decimal.Zero,
				SalesAmount: decimal.Zero,
			}
			byCountry[country] = cs
		}
		cs.OrderCount++
		cs.TaxAmount = cs.TaxAmount.Add(order.TaxAmount)
		cs.SalesAmount = cs.SalesAmount.Add(order.Total)

		for _, detail := range order.TaxDetails {
			rs, ok := byRate[detail.RuleID]
			if !ok {
				rs = &taxreportdomain.RateSummary{
					RuleID:    detail.RuleID.String(),
					Name:      detail.Name,
					TaxAmount: decimal.Zero,
				}
				byRate[detail.RuleID] = rs
			}
			rs.OrderCount++
			rs.TaxAmount = rs.TaxAmount.Add(detail.TaxAmount)
		}
	}

	if summary.TotalSales.Sign() > 0 {
		summary.TaxPercentage = summary.TotalTax.Div(summary.TotalSales).Mul(hundred)
	}

	report := &taxreportdomain.Report{
		StartDate: req.StartDate,
		EndDate:   end,
		Summary:   summary,
		ByRate:    sortedRates(byRate),
		ByCountry: sortedCountries(byCountry),
	}

	log.L(ctx).Info("tax report generated",
		zap.Time("start_date", req.StartDate),
		zap.Time("end_date", end),
		zap.Int("order_count", summary.OrderCount),
		zap.String("total_tax", summary.TotalTax.String()),
	)
	return report, nil
}

// orderInZone re-resolves the order's shipping address rather than trusting
// any zone stamped at checkout time, so filtering matches live calculation.
func (s *Service) orderInZone(ctx context.Context, order *orderdomain.Order, zoneID snowflake.ID) (bool, error) {
	zone, err := s.resolver.Resolve(ctx, taxzonedomain.Address{
		Country:    order.ShipCountry,
		State:      order.ShipState,
		PostalCode: order.ShipPostalCode,
	})
	if err != nil {
		return false, err
	}
	return zone != nil && zone.ID == zoneID, nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func sortedRates(m map[snowflake.ID]*taxreportdomain.RateSummary) []taxreportdomain.RateSummary {
	ids := make([]snowflake.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]taxreportdomain.RateSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m[id])
	}
	return out
}

func sortedCountries(m map[string]*taxreportdomain.CountrySummary) []taxreportdomain.CountrySummary {
	countries := make([]string, 0, len(m))
	for c := range m {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	out := make([]taxreportdomain.CountrySummary, 0, len(countries))
	for _, c := range countries {
		out = append(out, *m[c])
	}
	return out
}
