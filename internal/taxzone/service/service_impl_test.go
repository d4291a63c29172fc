package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"github.com/smallbiznis/taxflow/internal/taxzone/repository"
	"github.com/smallbiznis/taxflow/pkg/db"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type refCheckStub struct {
	referenced bool
}

func (s *refCheckStub) IsZoneReferenced(ctx context.Context, zoneID snowflake.ID) (bool, error) {
	return s.referenced, nil
}

func newZoneService(t *testing.T, dsn string, refCheck ZoneReferenceChecker) taxzonedomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&taxzonedomain.TaxZone{}, &taxzonedomain.ZoneLocation{}))

	node, _ := snowflake.NewNode(1)
	return NewService(serviceParams{
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.NewRepository(db),
		RefCheck: refCheck,
	})
}

func TestZoneService_CreateAndGet(t *testing.T) {
	svc := newZoneService(t, "file:taxzone_create?mode=memory&cache=shared", nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, taxzonedomain.CreateRequest{
		Name: "West Coast",
		Locations: []taxzonedomain.LocationRequest{
			{Country: "us", States: []string{"ca", " wa "}},
			{Country: "us", PostalCodePattern: "^97"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "west-coast", created.Code)
	if assert.Len(t, created.Locations, 2) {
		assert.Equal(t, "US", created.Locations[0].Country)
		assert.Equal(t, []string{"CA", "WA"}, created.Locations[0].States)
		assert.Equal(t, "^97", created.Locations[1].PostalCodePattern)
	}

	fetched, err := svc.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.Code, fetched.Code)

	_, err = svc.Create(ctx, taxzonedomain.CreateRequest{Name: "  "})
	assert.ErrorIs(t, err, taxzonedomain.ErrInvalidName)

	_, err = svc.Create(ctx, taxzonedomain.CreateRequest{Name: "Empty"})
	assert.ErrorIs(t, err, taxzonedomain.ErrNoLocations)
}

func TestZoneService_DuplicateCodeSurfacesAsDuplicateKey(t *testing.T) {
	svc := newZoneService(t, "file:taxzone_dup?mode=memory&cache=shared", nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, taxzonedomain.CreateRequest{
		Name:      "West Coast",
		Locations: []taxzonedomain.LocationRequest{{Country: "US"}},
	})
	assert.NoError(t, err)

	// "West  Coast" slugs to the same code, tripping the unique index.
	_, err = svc.Create(ctx, taxzonedomain.CreateRequest{
		Name:      "West  Coast",
		Locations: []taxzonedomain.LocationRequest{{Country: "US"}},
	})
	assert.Error(t, err)
	assert.True(t, db.IsDuplicateKeyErr(err), "expected duplicate key error, got %v", err)
}

func TestZoneService_UpdateReplacesLocations(t *testing.T) {
	svc := newZoneService(t, "file:taxzone_update?mode=memory&cache=shared", nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, taxzonedomain.CreateRequest{
		Name:      "Europe",
		Locations: []taxzonedomain.LocationRequest{{Country: "DE"}},
	})
	assert.NoError(t, err)

	name := "European Union"
	locations := []taxzonedomain.LocationRequest{{Country: "DE"}, {Country: "FR"}}
	updated, err := svc.Update(ctx, taxzonedomain.UpdateRequest{
		ID:        created.ID,
		Name:      &name,
		Locations: &locations,
	})
	assert.NoError(t, err)
	assert.Equal(t, "European Union", updated.Name)
	assert.Len(t, updated.Locations, 2)

	fetched, err := svc.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Len(t, fetched.Locations, 2)
}

func TestZoneService_DeleteBlockedWhileReferenced(t *testing.T) {
	refCheck := &refCheckStub{referenced: true}
	svc := newZoneService(t, "file:taxzone_delete?mode=memory&cache=shared", refCheck)
	ctx := context.Background()

	created, err := svc.Create(ctx, taxzonedomain.CreateRequest{
		Name:      "Nordics",
		Locations: []taxzonedomain.LocationRequest{{Country: "SE"}},
	})
	assert.NoError(t, err)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, taxzonedomain.ErrZoneInUse)

	refCheck.referenced = false
	assert.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, taxzonedomain.ErrNotFound)
}
