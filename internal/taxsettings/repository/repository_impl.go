package repository

import (
	"context"
	"errors"

	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxsettingsdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context) (*taxsettingsdomain.TaxSettings, error) {
	var settings taxsettingsdomain.TaxSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *repository) Save(ctx context.Context, settings *taxsettingsdomain.TaxSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
