package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
)

// AdminModule: POST /api/admin/accounts, POST /api/admin/emails
type AdminModule struct {
	Auth  *handlers.AuthHandler
	Email *handlers.EmailHandler
	Guard middleware.Guard
	Redis *redis.Client
}

func NewAdminModule(auth *handlers.AuthHandler, email *handlers.EmailHandler, g middleware.Guard, rdb *redis.Client) *AdminModule {
	return &AdminModule{Auth: auth, Email: email, Guard: g, Redis: rdb}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Guard), middleware.RequireRoles(m.Guard, entity.RoleAdmin))
	admin.Use(protected(m.Redis)...)
	{
		admin.POST("/accounts", m.Auth.CreateAccount)
		admin.POST("/emails", m.Email.Send)
	}
}
