package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/taxflow/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/taxflow/internal/catalog/repository"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	orderrepository "github.com/smallbiznis/taxflow/internal/order/repository"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type engineStub struct {
	result taxenginedomain.Result
}

func (s *engineStub) Calculate(ctx context.Context, req taxenginedomain.CalculationRequest) (*taxenginedomain.Result, error) {
	result := s.result
	return &result, nil
}

func TestCheckout_PersistsOrderWithTaxBreakdown(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:order_checkout?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&catalogdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderLine{},
		&orderdomain.OrderTaxDetail{},
	))

	node, _ := snowflake.NewNode(1)

	productID := node.Generate()
	assert.NoError(t, db.Create(&catalogdomain.Product{
		ID:        productID,
		Name:      "Widget",
		Category:  "std",
		UnitPrice: decimal.RequireFromString("50.00"),
	}).Error)

	ruleID := node.Generate()
	engine := &engineStub{result: taxenginedomain.Result{
		Subtotal:      decimal.RequireFromString("100.00"),
		TaxableAmount: decimal.RequireFromString("90.00"),
		TaxAmount:     decimal.RequireFromString("9.00"),
		TaxDetails: []taxenginedomain.TaxDetail{
			{RuleID: ruleID, Name: "VAT", RatePercent: decimal.RequireFromString("10"), TaxableAmount: decimal.RequireFromString("90.00"), TaxAmount: decimal.RequireFromString("9.00")},
		},
	}}

	svc := NewService(serviceParams{
		GenID:    node,
		Repo:     orderrepository.NewRepository(db),
		Engine:   engine,
		Products: catalogrepository.NewRepository(db),
	})

	order, err := svc.Checkout(context.Background(), orderdomain.CheckoutRequest{
		Items: []taxenginedomain.ItemInput{
			{ProductID: productID.String(), Price: decimal.RequireFromString("50.00"), Quantity: 2},
		},
		ShippingAddress: taxzonedomain.Address{Country: "us", State: "ca", PostalCode: "90210"},
		ShippingCost:    decimal.RequireFromString("5.00"),
		CouponDiscount:  decimal.RequireFromString("10.00"),
	})
	assert.NoError(t, err)

	assert.Equal(t, orderdomain.StatusPending, order.Status)
	assert.Equal(t, "US", order.ShipCountry)
	// Total = taxable + shipping + tax.
	assert.True(t, order.Total.Equal(decimal.RequireFromString("104.00")), "total %s", order.Total)

	fetched, err := svc.Get(context.Background(), order.ID.String())
	assert.NoError(t, err)
	if assert.Len(t, fetched.Lines, 1) {
		assert.Equal(t, "std", fetched.Lines[0].Category)
		assert.True(t, fetched.Lines[0].Amount.Equal(decimal.RequireFromString("100.00")))
	}
	if assert.Len(t, fetched.TaxDetails, 1) {
		assert.Equal(t, ruleID, fetched.TaxDetails[0].RuleID)
		assert.True(t, fetched.TaxDetails[0].TaxAmount.Equal(decimal.RequireFromString("9.00")))
	}
}

func TestList_LimitCapsNewestFirst(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:order_list_limit?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&orderdomain.Order{},
		&orderdomain.OrderLine{},
		&orderdomain.OrderTaxDetail{},
	))

	node, _ := snowflake.NewNode(1)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var newest snowflake.ID
	for i := 0; i < 3; i++ {
		order := &orderdomain.Order{
			ID:       node.Generate(),
			Status:   orderdomain.StatusCompleted,
			Total:    decimal.NewFromInt(int64(100 + i)),
			PlacedAt: base.AddDate(0, 0, i),
		}
		newest = order.ID
		assert.NoError(t, db.Create(order).Error)
	}

	svc := NewService(serviceParams{
		GenID:    node,
		Repo:     orderrepository.NewRepository(db),
		Engine:   &engineStub{},
		Products: catalogrepository.NewRepository(db),
	})

	orders, err := svc.List(context.Background(), 1)
	assert.NoError(t, err)
	if assert.Len(t, orders, 1) {
		assert.Equal(t, newest, orders[0].ID)
	}

	orders, err = svc.List(context.Background(), 0)
	assert.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestCheckout_UnknownProduct(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:order_unknown?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&catalogdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderLine{},
		&orderdomain.OrderTaxDetail{},
	))

	node, _ := snowflake.NewNode(1)
	svc := NewService(serviceParams{
		GenID:    node,
		Repo:     orderrepository.NewRepository(db),
		Engine:   &engineStub{},
		Products: catalogrepository.NewRepository(db),
	})

	_, err = svc.Checkout(context.Background(), orderdomain.CheckoutRequest{
		Items: []taxenginedomain.ItemInput{
			{ProductID: node.Generate().String(), Price: decimal.New(1, 0), Quantity: 1},
		},
		ShippingAddress: taxzonedomain.Address{Country: "US"},
	})
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}
