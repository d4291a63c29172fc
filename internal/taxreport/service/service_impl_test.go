package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/taxflow/internal/config"
	"github.com/smallbiznis/taxflow/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	orderrepository "github.com/smallbiznis/taxflow/internal/order/repository"
	taxreportdomain "github.com/smallbiznis/taxflow/internal/taxreport/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type resolverStub struct {
	byCountry map[string]*taxzonedomain.TaxZone
}

func (s *resolverStub) Resolve(ctx context.Context, addr taxzonedomain.Address) (*taxzonedomain.TaxZone, error) {
	return s.byCountry[addr.Country], nil
}

func newReportService(t *testing.T, dsn string, resolver taxzonedomain.Resolver) (taxreportdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&orderdomain.Order{},
		&orderdomain.OrderLine{},
		&orderdomain.OrderTaxDetail{},
	))

	node, _ := snowflake.NewNode(1)

	svc := NewService(serviceParams{
		Orders:   orderrepository.NewRepository(db),
		Resolver: resolver,
		Defaults: config.NewStaticEngineDefaultsHolder(config.DefaultEngineDefaults()),
		Metrics:  metrics.New(),
	})
	return svc, db, node
}

func seedOrder(t *testing.T, db *gorm.DB, node *snowflake.Node, country, status string, tax, total string, placedAt time.Time, details ...orderdomain.OrderTaxDetail) {
	t.Helper()

	order := &orderdomain.Order{
		ID:          node.Generate(),
		Status:      status,
		ShipCountry: country,
		TaxAmount:   decimal.RequireFromString(tax),
		Total:       decimal.RequireFromString(total),
		PlacedAt:    placedAt,
	}
	for i := range details {
		details[i].ID = node.Generate()
		details[i].OrderID = order.ID
	}
	order.TaxDetails = details
	assert.NoError(t, db.Create(order).Error)
}

func TestGenerate_AggregatesByCountryAndRate(t *testing.T) {
	svc, db, node := newReportService(t, "file:taxreport_agg?mode=memory&cache=shared", &resolverStub{})

	ruleID := node.Generate()
	inRange := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	seedOrder(t, db, node, "US", orderdomain.StatusCompleted, "5.00", "105.00", inRange,
		orderdomain.OrderTaxDetail{RuleID: ruleID, Name: "VAT", TaxAmount: decimal.RequireFromString("5.00")})
	seedOrder(t, db, node, "CA", orderdomain.StatusCompleted, "3.00", "103.00", inRange,
		orderdomain.OrderTaxDetail{RuleID: ruleID, Name: "VAT", TaxAmount: decimal.RequireFromString("3.00")})
	// Excluded: cancelled, out of range, zero tax.
	seedOrder(t, db, node, "US", orderdomain.StatusCancelled, "9.00", "109.00", inRange)
	seedOrder(t, db, node, "US", orderdomain.StatusCompleted, "7.00", "107.00", inRange.AddDate(0, 2, 0))
	seedOrder(t, db, node, "US", orderdomain.StatusCompleted, "0", "50.00", inRange)

	report, err := svc.Generate(context.Background(), taxreportdomain.Request{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	assert.Equal(t, 2, report.Summary.OrderCount)
	assert.True(t, report.Summary.TotalTax.Equal(decimal.RequireFromString("8.00")), "total tax %s", report.Summary.TotalTax)
	assert.True(t, report.Summary.TotalSales.Equal(decimal.RequireFromString("208.00")), "total sales %s", report.Summary.TotalSales)

	expectedPct := decimal.RequireFromString("8.00").
		Div(decimal.RequireFromString("208.00")).
		Mul(decimal.NewFromInt(100))
	assert.True(t, report.Summary.TaxPercentage.Equal(expectedPct), "tax pct %s", report.Summary.TaxPercentage)

	if assert.Len(t, report.ByCountry, 2) {
		assert.Equal(t, "CA", report.ByCountry[0].Country)
		assert.Equal(t, 1, report.ByCountry[0].OrderCount)
		assert.True(t, report.ByCountry[0].TaxAmount.Equal(decimal.RequireFromString("3.00")))
		assert.Equal(t, "US", report.ByCountry[1].Country)
		assert.Equal(t, 1, report.ByCountry[1].OrderCount)
		assert.True(t, report.ByCountry[1].TaxAmount.Equal(decimal.RequireFromString("5.00")))
	}

	if assert.Len(t, report.ByRate, 1) {
		assert.Equal(t, ruleID.String(), report.ByRate[0].RuleID)
		assert.Equal(t, 2, report.ByRate[0].OrderCount)
		assert.True(t, report.ByRate[0].TaxAmount.Equal(decimal.RequireFromString("8.00")))
	}
}

func TestGenerate_EndDateIsInclusive(t *testing.T) {
	svc, db, node := newReportService(t, "file:taxreport_eod?mode=memory&cache=shared", &resolverStub{})

	// Late on the final day of the range still counts.
	seedOrder(t, db, node, "US", orderdomain.StatusCompleted, "5.00", "105.00",
		time.Date(2026, 3, 31, 22, 30, 0, 0, time.UTC))

	report, err := svc.Generate(context.Background(), taxreportdomain.Request{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Summary.OrderCount)
}

func TestGenerate_ZoneFilterReResolves(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	zoneID := node.Generate()
	resolver := &resolverStub{byCountry: map[string]*taxzonedomain.TaxZone{
		"US": {ID: zoneID, Code: "us-wide", Name: "US"},
	}}

	svc, db, seedNode := newReportService(t, "file:taxreport_zone?mode=memory&cache=shared", resolver)

	inRange := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedOrder(t, db, seedNode, "US", orderdomain.StatusCompleted, "5.00", "105.00", inRange)
	seedOrder(t, db, seedNode, "DE", orderdomain.StatusCompleted, "3.00", "103.00", inRange)

	zoneFilter := zoneID.String()
	report, err := svc.Generate(context.Background(), taxreportdomain.Request{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		ZoneID:    &zoneFilter,
	})
	assert.NoError(t, err)

	assert.Equal(t, 1, report.Summary.OrderCount)
	if assert.Len(t, report.ByCountry, 1) {
		assert.Equal(t, "US", report.ByCountry[0].Country)
	}
}

func TestGenerate_Validation(t *testing.T) {
	svc, _, _ := newReportService(t, "file:taxreport_val?mode=memory&cache=shared", &resolverStub{})

	_, err := svc.Generate(context.Background(), taxreportdomain.Request{})
	assert.ErrorIs(t, err, taxreportdomain.ErrMissingDateRange)

	_, err = svc.Generate(context.Background(), taxreportdomain.Request{
		StartDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, taxreportdomain.ErrInvalidDateRange)

	_, err = svc.Generate(context.Background(), taxreportdomain.Request{
		StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, taxreportdomain.ErrRangeTooWide)
}
