package memory

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type CartRepository struct {
	s *Store
}

func NewCartRepository(s *Store) *CartRepository {
	return &CartRepository{s: s}
}

func (r *CartRepository) Get(_ context.Context, accountID string) (*entity.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.load(accountID)
}

func (r *CartRepository) Mutate(_ context.Context, accountID string, fn repository.CartMutation) (*entity.Cart, error) {
	lock := r.s.cartLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	r.s.mu.RLock()
	cur, err := r.load(accountID)
	r.s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	next, err := fn(*cur)
	if err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[accountID]; !ok {
		return nil, errs.ErrAccountNotFound
	}
	for _, l := range next.Lines {
		if l.Quantity < 1 || l.Quantity > entity.MaxLineQuantity {
			return nil, errs.ErrInvalidQuantity
		}
		if _, ok := r.s.products[l.ProductID]; !ok {
			return nil, errs.ErrProductNotFound
		}
	}
	next.AccountID = accountID
	next.Version = cur.Version + 1
	next.UpdatedAt = r.s.now()
	next.Lines = append([]entity.CartLine{}, next.Lines...)
	r.s.carts[accountID] = &next

	out := next
	out.Lines = append([]entity.CartLine{}, next.Lines...)
	return &out, nil
}

// load expects s.mu to be held.
func (r *CartRepository) load(accountID string) (*entity.Cart, error) {
	if _, ok := r.s.accounts[accountID]; !ok {
		return nil, errs.ErrAccountNotFound
	}
	c, ok := r.s.carts[accountID]
	if !ok {
		return &entity.Cart{AccountID: accountID, Lines: []entity.CartLine{}}, nil
	}
	out := *c
	out.Lines = make([]entity.CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		if _, ok := r.s.products[l.ProductID]; ok {
			out.Lines = append(out.Lines, l)
		}
	}
	return &out, nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
