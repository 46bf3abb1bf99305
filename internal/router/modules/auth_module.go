package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
)

// AuthModule serves registration and session endpoints under /auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   middleware.Guard
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, g middleware.Guard, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Guard: g, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	// OptionalAuth lets an admin session provision role=admin accounts
	auth.POST("/register", credentialLimiter(m.Redis), middleware.OptionalAuth(m.Guard), m.Handler.Register)
	auth.POST("/login", credentialLimiter(m.Redis), m.Handler.Login)
	auth.POST("/logout", m.Handler.Logout)

	session := auth.Group("/")
	session.Use(middleware.Auth(m.Guard))
	session.Use(protected(m.Redis)...)
	{
		session.GET("/profile", m.Handler.Profile)
	}
}
