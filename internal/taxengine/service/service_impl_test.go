package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/taxflow/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/taxflow/internal/catalog/repository"
	"github.com/smallbiznis/taxflow/internal/observability/metrics"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
	taxraterepository "github.com/smallbiznis/taxflow/internal/taxrate/repository"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type resolverStub struct {
	zone *taxzonedomain.TaxZone
}

func (s *resolverStub) Resolve(ctx context.Context, addr taxzonedomain.Address) (*taxzonedomain.TaxZone, error) {
	return s.zone, nil
}

type settingsStub struct {
	settings taxsettingsdomain.TaxSettings
}

func (s *settingsStub) Current(ctx context.Context) (*taxsettingsdomain.TaxSettings, error) {
	current := s.settings
	return &current, nil
}

func (s *settingsStub) Update(ctx context.Context, req taxsettingsdomain.UpdateRequest) (*taxsettingsdomain.TaxSettings, error) {
	return nil, nil
}

func TestCalculate_EndToEnd(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:taxengine_e2e?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&taxratedomain.TaxRate{}, &catalogdomain.Product{})
	assert.NoError(t, err)

	node, _ := snowflake.NewNode(1)

	zoneID := node.Generate()
	zone := &taxzonedomain.TaxZone{ID: zoneID, Code: "california", Name: "California"}

	// Zone-scoped rate plus a global rate; an unrelated zone's rate must
	// never apply.
	otherZoneID := node.Generate()
	db.Create(&taxratedomain.TaxRate{
		ID:          node.Generate(),
		Name:        "CA Sales Tax",
		RatePercent: decimal.RequireFromString("8.25"),
		ZoneID:      &zoneID,
		Priority:    1,
		Active:      true,
	})
	db.Create(&taxratedomain.TaxRate{
		ID:          node.Generate(),
		Name:        "Federal",
		RatePercent: decimal.RequireFromString("2"),
		Priority:    2,
		Active:      true,
	})
	db.Create(&taxratedomain.TaxRate{
		ID:          node.Generate(),
		Name:        "Other Zone",
		RatePercent: decimal.RequireFromString("20"),
		ZoneID:      &otherZoneID,
		Priority:    1,
		Active:      true,
	})

	productID := node.Generate()
	db.Create(&catalogdomain.Product{
		ID:        productID,
		Name:      "Widget",
		Category:  "std",
		UnitPrice: decimal.RequireFromString("50.00"),
	})

	svc := NewService(serviceParams{
		Resolver: &resolverStub{zone: zone},
		Rates:    taxraterepository.NewRepository(db),
		Products: catalogrepository.NewRepository(db),
		Settings: &settingsStub{settings: taxsettingsdomain.TaxSettings{
			CalculateTaxBasedOn: taxsettingsdomain.BasisShipping,
			ShippingTaxClass:    "standard",
			RoundTaxAtSubtotal:  true,
		}},
		Metrics: metrics.New(),
	})

	result, err := svc.Calculate(context.Background(), taxenginedomain.CalculationRequest{
		Items: []taxenginedomain.ItemInput{
			{ProductID: productID.String(), Price: decimal.RequireFromString("50.00"), Quantity: 2},
		},
		ShippingAddress: taxzonedomain.Address{Country: "US", State: "CA", PostalCode: "90210"},
	})
	assert.NoError(t, err)
	if assert.NotNil(t, result) {
		assert.True(t, result.Subtotal.Equal(decimal.RequireFromString("100.00")), "subtotal %s", result.Subtotal)
		// 8.25% + 2% applied in priority order, no unrelated zone rate.
		assert.True(t, result.TaxAmount.Equal(decimal.RequireFromString("10.25")), "tax %s", result.TaxAmount)
		if assert.Len(t, result.TaxDetails, 2) {
			assert.Equal(t, "CA Sales Tax", result.TaxDetails[0].Name)
			assert.Equal(t, "Federal", result.TaxDetails[1].Name)
		}
		if assert.NotNil(t, result.ZoneID) {
			assert.Equal(t, zoneID.String(), *result.ZoneID)
		}
	}
}

func TestCalculate_Validation(t *testing.T) {
	svc := NewService(serviceParams{
		Resolver: &resolverStub{},
		Settings: &settingsStub{},
		Metrics:  metrics.New(),
	})

	_, err := svc.Calculate(context.Background(), taxenginedomain.CalculationRequest{
		ShippingAddress: taxzonedomain.Address{Country: "US"},
	})
	assert.ErrorIs(t, err, taxenginedomain.ErrNoItems)

	_, err = svc.Calculate(context.Background(), taxenginedomain.CalculationRequest{
		Items: []taxenginedomain.ItemInput{{ProductID: "1", Price: decimal.New(1, 0), Quantity: 1}},
	})
	assert.ErrorIs(t, err, taxenginedomain.ErrMissingAddress)

	_, err = svc.Calculate(context.Background(), taxenginedomain.CalculationRequest{
		Items:           []taxenginedomain.ItemInput{{ProductID: "1", Price: decimal.New(1, 0), Quantity: 0}},
		ShippingAddress: taxzonedomain.Address{Country: "US"},
	})
	assert.ErrorIs(t, err, taxenginedomain.ErrInvalidQuantity)

	_, err = svc.Calculate(context.Background(), taxenginedomain.CalculationRequest{
		Items:           []taxenginedomain.ItemInput{{ProductID: "1", Price: decimal.New(1, 0), Quantity: 1}},
		ShippingAddress: taxzonedomain.Address{Country: "US"},
		ShippingCost:    decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, taxenginedomain.ErrInvalidAmount)
}

func TestCalculate_UnknownProduct(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:taxengine_unknown?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(&taxratedomain.TaxRate{}, &catalogdomain.Product{})
	assert.NoError(t, err)

	node, _ := snowflake.NewNode(1)
	db.Create(&taxratedomain.TaxRate{
		ID:          node.Generate(),
		Name:        "Global",
		RatePercent: decimal.RequireFromString("10"),
		Priority:    1,
		Active:      true,
	})

	svc := NewService(serviceParams{
		Resolver: &resolverStub{},
		Rates:    taxraterepository.NewRepository(db),
		Products: catalogrepository.NewRepository(db),
		Settings: &settingsStub{},
		Metrics:  metrics.New(),
	})

	_, err = svc.Calculate(context.Background(), taxenginedomain.CalculationRequest{
		Items:           []taxenginedomain.ItemInput{{ProductID: node.Generate().String(), Price: decimal.New(1, 0), Quantity: 1}},
		ShippingAddress: taxzonedomain.Address{Country: "US"},
	})
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}
