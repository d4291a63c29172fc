package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxzonedomain.Repository {
	return &repository{db: db}
}

func (r *repository) ListAll(ctx context.Context) ([]taxzonedomain.TaxZone, error) {
	var zones []taxzonedomain.TaxZone
	err := r.db.WithContext(ctx).
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Order("id ASC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *repository) Create(ctx context.Context, zone *taxzonedomain.TaxZone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*taxzonedomain.TaxZone, error) {
	var zone taxzonedomain.TaxZone
	err := r.db.WithContext(ctx).
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&zone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &zone, nil
}

func (r *repository) Update(ctx context.Context, zone *taxzonedomain.TaxZone) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`UPDATE tax_zones SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
			zone.Name,
			zone.Description,
			zone.UpdatedAt,
			zone.ID,
		).Error; err != nil {
			return err
		}

		// Locations are replaced wholesale so ordering stays authoritative.
		if err := tx.Where("zone_id = ?", zone.ID).
			Delete(&taxzonedomain.ZoneLocation{}).Error; err != nil {
			return err
		}
		if len(zone.Locations) == 0 {
			return nil
		}
		return tx.Create(&zone.Locations).Error
	})
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("zone_id = ?", id).
			Delete(&taxzonedomain.ZoneLocation{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&taxzonedomain.TaxZone{}).Error
	})
}
