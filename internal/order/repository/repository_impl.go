package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	"github.com/smallbiznis/taxflow/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) orderdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *orderdomain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("TaxDetails").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, opts ...option.QueryOption) ([]orderdomain.Order, error) {
	base := []option.QueryOption{
		option.WithPreload("Lines"),
		option.WithPreload("TaxDetails"),
		option.WithSortBy("placed_at DESC"),
	}

	stmt := r.db.WithContext(ctx)
	for _, opt := range append(base, opts...) {
		stmt = opt.Apply(stmt)
	}

	var orders []orderdomain.Order
	if err := stmt.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindInRange(ctx context.Context, start, end time.Time, excludeStatuses []string) ([]orderdomain.Order, error) {
	var orders []orderdomain.Order
	stmt := r.db.WithContext(ctx).
		Preload("TaxDetails").
		Where("placed_at >= ? AND placed_at <= ?", start, end)
	if len(excludeStatuses) > 0 {
		stmt = stmt.Where("status NOT IN ?", excludeStatuses)
	}
	if err := stmt.Order("placed_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
