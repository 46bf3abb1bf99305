package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

// AccessGuard turns a raw session token into an Identity and gates roles.
// The identity is trusted as decoded; the account is not re-read.
type AccessGuard struct {
	JWT         *helpers.JWTManager
	Revocations RevocationStore
}

func NewAccessGuard(jwt *helpers.JWTManager, revocations RevocationStore) *AccessGuard {
	return &AccessGuard{JWT: jwt, Revocations: revocations}
}

func (g *AccessGuard) Authenticate(ctx context.Context, raw string) (entity.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return entity.Identity{}, errs.ErrMissingToken
	}
	claims, err := g.JWT.Parse(raw)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return entity.Identity{}, fmt.Errorf("%w: unknown role %q", errs.ErrInvalidToken, claims.Role)
	}
	if g.Revocations != nil {
		revoked, err := g.Revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return entity.Identity{}, unavailable("check revocation", err)
		}
		if revoked {
			return entity.Identity{}, fmt.Errorf("%w: session revoked", errs.ErrInvalidToken)
		}
	}
	return entity.Identity{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Authorize fails with ErrAccessDenied unless the identity holds one of allowed.
func (g *AccessGuard) Authorize(id entity.Identity, allowed ...entity.Role) error {
	if !id.HasRole(allowed...) {
		return errs.ErrAccessDenied
	}
	return nil
}
