package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
)

// CartModule serves the caller's own cart; every route needs a session.
type CartModule struct {
	Handler *handlers.CartHandler
	Guard   middleware.Guard
	Redis   *redis.Client
}

func NewCartModule(h *handlers.CartHandler, g middleware.Guard, rdb *redis.Client) *CartModule {
	return &CartModule{Handler: h, Guard: g, Redis: rdb}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.Use(middleware.Auth(m.Guard))
	cart.Use(protected(m.Redis)...)
	{
		cart.GET("", m.Handler.Get)
		cart.POST("", m.Handler.Add)
		cart.DELETE("", m.Handler.Clear)
		cart.POST("/checkout", m.Handler.Checkout)
		cart.PATCH("/:productId", m.Handler.Decrement)
		cart.DELETE("/:productId", m.Handler.Remove)
	}
}
