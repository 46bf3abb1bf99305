package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type AccountRepository struct {
	s *Store
}

func NewAccountRepository(s *Store) *AccountRepository {
	return &AccountRepository{s: s}
}

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.Email = entity.NormalizeEmail(a.Email)
	if _, taken := r.s.byEmail[a.Email]; taken {
		return errs.ErrDuplicateAccount
	}
	now := r.s.now()
	a.ID = uuid.NewString()
	a.CreatedAt, a.UpdatedAt = now, now

	cp := *a
	r.s.accounts[a.ID] = &cp
	r.s.byEmail[a.Email] = a.ID
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	r.s.mu.RLock()
	id, ok := r.s.byEmail[entity.NormalizeEmail(email)]
	r.s.mu.RUnlock()
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	return r.GetByID(ctx, id)
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
