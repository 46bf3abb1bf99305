package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type ProductRepository struct {
	db DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price::text, category, image_url, created_at, updated_at`

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category, image_url)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.Price.String(), p.Category, p.ImageURL)
	return storeErr("create product", row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	row := r.db.QueryRow(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4::numeric, category = $5, image_url = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, p.ID, p.Name, p.Description, p.Price.String(), p.Category, p.ImageURL)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		return storeErr("update product", notFound(err, errs.ErrProductNotFound))
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (*entity.Product, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, storeErr("delete product", notFound(err, errs.ErrProductNotFound))
	}
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, storeErr("get product", notFound(err, errs.ErrProductNotFound))
	}
	return p, nil
}

func (r *ProductRepository) GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, storeErr("get products", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, storeErr("get products", err)
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepository) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, f.MinPrice.String())
		where = append(where, fmt.Sprintf("price >= $%d::numeric", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, f.MaxPrice.String())
		where = append(where, fmt.Sprintf("price <= $%d::numeric", len(args)))
	}
	sql := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	list, err := collectProducts(rows)
	return list, storeErr("list products", err)
}

func (r *ProductRepository) SearchByName(ctx context.Context, q, category string, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE name ILIKE '%' || $1 || '%' AND ($2 = '' OR category = $2)
		ORDER BY name
		LIMIT $3
	`, q, category, limit)
	if err != nil {
		return nil, storeErr("search products", err)
	}
	list, err := collectProducts(rows)
	return list, storeErr("search products", err)
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	p := &entity.Product{}
	var price string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Category, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	p.Price = d
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Product{}
	}
	return list, nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
