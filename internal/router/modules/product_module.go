package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
)

// ProductModule wires the catalog.
// Public: GET /api/products, /products/filter, /products/search, /products/:id
// Admin: POST /api/products, PUT|DELETE /products/:id, POST /products/:id/image
type ProductModule struct {
	Handler *handlers.ProductHandler
	Guard   middleware.Guard
	Redis   *redis.Client
}

func NewProductModule(h *handlers.ProductHandler, g middleware.Guard, rdb *redis.Client) *ProductModule {
	return &ProductModule{Handler: h, Guard: g, Redis: rdb}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", m.Handler.List)
	products.GET("/filter", m.Handler.Filter)
	products.GET("/search", m.Handler.Search)
	products.GET("/:id", m.Handler.Get)

	admin := products.Group("")
	admin.Use(middleware.Auth(m.Guard), middleware.RequireRoles(m.Guard, entity.RoleAdmin))
	admin.Use(protected(m.Redis)...)
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/image", m.Handler.UploadImage)
	}
}
