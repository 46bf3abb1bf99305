package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/response"
)

const (
	CtxIdentityKey = "identity"
	CtxUserIDKey   = "userID"
)

// Guard resolves and authorizes session identities.
type Guard interface {
	Authenticate(ctx context.Context, raw string) (entity.Identity, error)
	Authorize(id entity.Identity, allowed ...entity.Role) error
}

// TokenFromRequest reads the session cookie first, then an Authorization bearer header.
func TokenFromRequest(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.SessionCookieName); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth requires a valid session and stores the Identity in the Gin context.
func Auth(g Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := g.Authenticate(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			switch {
			case errors.Is(err, errs.ErrMissingToken):
				response.Abort(c, http.StatusUnauthorized, errs.ErrMissingToken.Error(), nil)
			case errors.Is(err, errs.ErrStoreUnavailable):
				response.Abort(c, http.StatusServiceUnavailable, errs.ErrStoreUnavailable.Error(), nil)
			default:
				response.Abort(c, http.StatusUnauthorized, errs.ErrInvalidToken.Error(), nil)
			}
			return
		}
		setIdentity(c, id)
		c.Next()
	}
}

// OptionalAuth attaches an Identity when a valid token is present and never aborts.
func OptionalAuth(g Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := TokenFromRequest(c); raw != "" {
			if id, err := g.Authenticate(c.Request.Context(), raw); err == nil {
				setIdentity(c, id)
			}
		}
		c.Next()
	}
}

// RequireRoles must run after Auth.
func RequireRoles(g Guard, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, errs.ErrMissingToken.Error(), nil)
			return
		}
		if err := g.Authorize(id, roles...); err != nil {
			response.Abort(c, http.StatusForbidden, errs.ErrAccessDenied.Error(), nil)
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok
}

func setIdentity(c *gin.Context, id entity.Identity) {
	c.Set(CtxIdentityKey, id)
	c.Set(CtxUserIDKey, id.AccountID)
}
