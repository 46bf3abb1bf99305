package repository

import (
	"context"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// CartMutation transforms a loaded cart; returning an error aborts the write.
type CartMutation func(entity.Cart) (entity.Cart, error)

// CartRepository stores one cart per account.
//
// Mutate loads the cart, applies fn and overwrites the stored lines, with all
// Mutate calls for the same account serialized. Both methods fail with
// errs.ErrAccountNotFound when the account does not exist.
type CartRepository interface {
	Get(ctx context.Context, accountID string) (*entity.Cart, error)
	Mutate(ctx context.Context, accountID string, fn CartMutation) (*entity.Cart, error)
}
