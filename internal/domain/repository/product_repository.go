package repository

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// ProductRepository backs the catalog. Single-product lookups fail with
// errs.ErrProductNotFound; GetMany silently omits unknown ids.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) (*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error)
	SearchByName(ctx context.Context, q, category string, limit int) ([]*entity.Product, error)
}
