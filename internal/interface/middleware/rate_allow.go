package middleware

import (
	"net"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// AllowPrivateIP bypasses the limit for loopback and private-range clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowRoles bypasses the limit for authenticated identities holding one of roles.
func AllowRoles(roles ...entity.Role) AllowFunc {
	return func(c *gin.Context) bool {
		id, ok := IdentityFrom(c)
		return ok && id.HasRole(roles...)
	}
}
