package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
	"github.com/smallbiznis/taxflow/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxratedomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindApplicable(ctx context.Context, zoneID *snowflake.ID) ([]taxratedomain.TaxRate, error) {
	var rates []taxratedomain.TaxRate
	stmt := r.db.WithContext(ctx).
		Model(&taxratedomain.TaxRate{}).
		Where("active = ?", true)

	if zoneID != nil {
		stmt = stmt.Where("zone_id IS NULL OR zone_id = ?", *zoneID)
	} else {
		stmt = stmt.Where("zone_id IS NULL")
	}

	err := stmt.Order("priority ASC, id ASC").Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) Create(ctx context.Context, rate *taxratedomain.TaxRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*taxratedomain.TaxRate, error) {
	var rate taxratedomain.TaxRate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *repository) List(ctx context.Context, filter taxratedomain.ListRequest) ([]taxratedomain.TaxRate, error) {
	var rates []taxratedomain.TaxRate
	stmt := r.db.WithContext(ctx).Model(&taxratedomain.TaxRate{})

	if filter.ZoneID != "" {
		zoneID, err := snowflake.ParseString(filter.ZoneID)
		if err != nil {
			return nil, taxratedomain.ErrInvalidID
		}
		stmt = stmt.Where("zone_id = ?", zoneID)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}

	sort := option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"priority":   true,
	})
	if sort == "" {
		sort = "priority ASC, id ASC"
	}
	stmt = option.WithSortBy(sort).Apply(stmt)

	if err := stmt.Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) Update(ctx context.Context, rate *taxratedomain.TaxRate) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE tax_rates
		 SET name = ?, rate_percent = ?, zone_id = ?, product_categories = ?,
		     is_compound = ?, priority = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		rate.Name,
		rate.RatePercent,
		rate.ZoneID,
		rate.ProductCategories,
		rate.IsCompound,
		rate.Priority,
		rate.Active,
		rate.UpdatedAt,
		rate.ID,
	).Error
}

func (r *repository) CountByZone(ctx context.Context, zoneID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&taxratedomain.TaxRate{}).
		Where("zone_id = ?", zoneID).
		Count(&count).Error
	return count, err
}
