package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/taxflow/internal/config"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
	"github.com/smallbiznis/taxflow/internal/taxsettings/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, dsn string) taxsettingsdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&taxsettingsdomain.TaxSettings{}))

	node, _ := snowflake.NewNode(1)
	return NewService(serviceParams{
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.NewRepository(db),
		Defaults: config.NewStaticEngineDefaultsHolder(config.DefaultEngineDefaults()),
	})
}

func TestCurrent_FallsBackToDefaults(t *testing.T) {
	svc := newTestService(t, "file:taxsettings_defaults?mode=memory&cache=shared")

	settings, err := svc.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, taxsettingsdomain.BasisShipping, settings.CalculateTaxBasedOn)
	assert.Equal(t, "standard", settings.ShippingTaxClass)
	assert.True(t, settings.RoundTaxAtSubtotal)
	assert.False(t, settings.PricesIncludeTax)
}

func TestUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	svc := newTestService(t, "file:taxsettings_update?mode=memory&cache=shared")

	basis := taxsettingsdomain.BasisBilling
	updated, err := svc.Update(context.Background(), taxsettingsdomain.UpdateRequest{
		CalculateTaxBasedOn: &basis,
	})
	assert.NoError(t, err)
	assert.Equal(t, taxsettingsdomain.BasisBilling, updated.CalculateTaxBasedOn)
	// Untouched fields keep their default values.
	assert.Equal(t, "standard", updated.ShippingTaxClass)
	assert.True(t, updated.RoundTaxAtSubtotal)

	include := true
	updated, err = svc.Update(context.Background(), taxsettingsdomain.UpdateRequest{
		PricesIncludeTax: &include,
	})
	assert.NoError(t, err)
	assert.True(t, updated.PricesIncludeTax)
	// The earlier change survives the second partial update.
	assert.Equal(t, taxsettingsdomain.BasisBilling, updated.CalculateTaxBasedOn)

	current, err := svc.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, taxsettingsdomain.BasisBilling, current.CalculateTaxBasedOn)
	assert.True(t, current.PricesIncludeTax)
}

func TestUpdate_RejectsUnknownBasis(t *testing.T) {
	svc := newTestService(t, "file:taxsettings_invalid?mode=memory&cache=shared")

	basis := "warehouse"
	_, err := svc.Update(context.Background(), taxsettingsdomain.UpdateRequest{
		CalculateTaxBasedOn: &basis,
	})
	assert.ErrorIs(t, err, taxsettingsdomain.ErrInvalidBasis)
}
