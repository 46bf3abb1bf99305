package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
)

const (
	credentialLimit = 10  // register/login per IP per minute
	ipLimit         = 300 // protected routes per IP per minute
	accountLimit    = 120 // protected routes per account per minute
)

func credentialLimiter(rdb *redis.Client) gin.HandlerFunc {
	return middleware.RateLimit(rdb, credentialLimit, time.Minute, middleware.KeyByIPAndPath(), nil)
}

// protected is the limiter chain for routes behind Auth. Admins are exempt
// from the per-account limit, not the per-IP one.
func protected(rdb *redis.Client) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.RateLimit(rdb, ipLimit, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, accountLimit, time.Minute, middleware.KeyByUserID(), middleware.AllowRoles(entity.RoleAdmin)),
	}
}
