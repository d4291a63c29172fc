package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/taxflow/internal/catalog/domain"
	"github.com/smallbiznis/taxflow/pkg/db/option"
	pkgrepository "github.com/smallbiznis/taxflow/pkg/repository"
	"gorm.io/gorm"
)

type repository struct {
	db    *gorm.DB
	store pkgrepository.Repository[catalogdomain.Product]
}

func NewRepository(db *gorm.DB) catalogdomain.Repository {
	return &repository{
		db:    db,
		store: pkgrepository.ProvideStore[catalogdomain.Product](db),
	}
}

func (r *repository) Create(ctx context.Context, product *catalogdomain.Product) error {
	return r.store.Create(ctx, product)
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*catalogdomain.Product, error) {
	return r.store.FindOne(ctx, &catalogdomain.Product{ID: id})
}

func (r *repository) FindByIDs(ctx context.Context, ids []snowflake.ID) (map[snowflake.ID]catalogdomain.Product, error) {
	if len(ids) == 0 {
		return map[snowflake.ID]catalogdomain.Product{}, nil
	}

	var products []catalogdomain.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	out := make(map[snowflake.ID]catalogdomain.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *repository) List(ctx context.Context) ([]catalogdomain.Product, error) {
	rows, err := r.store.Find(ctx, &catalogdomain.Product{}, option.WithSortBy("id ASC"))
	if err != nil {
		return nil, err
	}

	products := make([]catalogdomain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, *row)
	}
	return products, nil
}
