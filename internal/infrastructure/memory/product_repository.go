package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type ProductRepository struct {
	s   *Store
	seq map[string]int
	n   int
}

func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s, seq: make(map[string]int)}
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	r.s.products[p.ID] = &cp
	r.n++
	r.seq[p.ID] = r.n
	return nil
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return errs.ErrProductNotFound
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.s.now()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

// Delete also drops the product from every cart.
func (r *ProductRepository) Delete(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	delete(r.s.products, id)
	delete(r.seq, id)
	for accountID, c := range r.s.carts {
		next := c.Remove(id)
		r.s.carts[accountID] = &next
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) GetMany(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *ProductRepository) List(_ context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	return r.collect(f.Match), nil
}

func (r *ProductRepository) SearchByName(_ context.Context, q, category string, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	q = strings.ToLower(q)
	out := r.collect(func(p *entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) && (category == "" || p.Category == category)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// collect returns matching products newest first.
func (r *ProductRepository) collect(match func(*entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if match(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.seq[out[i].ID] > r.seq[out[j].ID] })
	return out
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
