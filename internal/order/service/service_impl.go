package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/taxflow/internal/catalog/domain"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	"github.com/smallbiznis/taxflow/pkg/db/option"
	"github.com/smallbiznis/taxflow/pkg/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	GenID    *snowflake.Node
	Repo     orderdomain.Repository
	Engine   taxenginedomain.Service
	Products catalogdomain.Repository
}

type Service struct {
	genID    *snowflake.Node
	repo     orderdomain.Repository
	engine   taxenginedomain.Service
	products catalogdomain.Repository
}

func NewService(p serviceParams) orderdomain.Service {
	return &Service{
		genID:    p.GenID,
		repo:     p.Repo,
		engine:   p.Engine,
		products: p.Products,
	}
}

func (s *Service) Checkout(ctx context.Context, req orderdomain.CheckoutRequest) (*orderdomain.Order, error) {
	result, err := s.engine.Calculate(ctx, taxenginedomain.CalculationRequest{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		ShippingCost:    req.ShippingCost,
		CouponDiscount:  req.CouponDiscount,
	})
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &orderdomain.Order{
		ID:             s.genID.Generate(),
		Status:         orderdomain.StatusPending,
		ShipCountry:    strings.ToUpper(strings.TrimSpace(req.ShippingAddress.Country)),
		ShipState:      strings.ToUpper(strings.TrimSpace(req.ShippingAddress.State)),
		ShipPostalCode: strings.TrimSpace(req.ShippingAddress.PostalCode),
		Subtotal:       result.Subtotal,
		ShippingCost:   req.ShippingCost,
		CouponDiscount: req.CouponDiscount,
		TaxableAmount:  result.TaxableAmount,
		TaxAmount:      result.TaxAmount,
		Total:          result.TaxableAmount.Add(req.ShippingCost).Add(result.TaxAmount),
		Lines:          lines,
		PlacedAt:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	details := make([]orderdomain.OrderTaxDetail, 0, len(result.TaxDetails))
	for _, d := range result.TaxDetails {
		details = append(details, orderdomain.OrderTaxDetail{
			ID:            s.genID.Generate(),
			OrderID:       order.ID,
			RuleID:        d.RuleID,
			Name:          d.Name,
			RatePercent:   d.RatePercent,
			TaxableAmount: d.TaxableAmount,
			TaxAmount:     d.TaxAmount,
			IsCompound:    d.IsCompound,
		})
	}
	order.TaxDetails = details

	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.L(ctx).Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.Total.String()),
		zap.String("tax_amount", order.TaxAmount.String()),
	)
	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (*orderdomain.Order, error) {
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, orderdomain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrNotFound
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]orderdomain.Order, error) {
	if limit > 0 {
		return s.repo.List(ctx, option.WithLimit(limit))
	}
	return s.repo.List(ctx)
}

func (s *Service) buildLines(ctx context.Context, inputs []taxenginedomain.ItemInput) ([]orderdomain.OrderLine, error) {
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

	lines := make([]orderdomain.OrderLine, 0, len(inputs))
	for i, in := range inputs {
		product, ok := products[ids[i]]
		if !ok {
			return nil, catalogdomain.ErrProductNotFound
		}
		lines = append(lines, orderdomain.OrderLine{
			ID:        s.genID.Generate(),
			ProductID: ids[i],
			Name:      product.Name,
			Category:  product.Category,
			UnitPrice: in.Price,
			Quantity:  in.Quantity,
			Amount:    in.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		})
	}
	return lines, nil
}
