package repository

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// AccountRepository is the credential store.
// Create fails with errs.ErrDuplicateAccount when the normalized email is taken;
// lookups fail with errs.ErrAccountNotFound.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
}
