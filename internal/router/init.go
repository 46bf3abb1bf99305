package router

import (
	"github.com/oksasatya/storefront-api/internal/container"
	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/router/modules"
)

// InitModules builds the handlers from c and registers every feature module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	authHandler := handlers.NewAuthHandler(c.Auth, c.Logger, c.Cookies)
	cartHandler := handlers.NewCartHandler(c.Cart, c.Logger)
	productHandler := handlers.NewProductHandler(c.Catalog, c.Logger)
	emailHandler := handlers.NewEmailHandler(c.Mail, c.Logger, c.Config)

	r.Add(modules.NewAuthModule(authHandler, c.Guard, c.Redis))
	r.Add(modules.NewAdminModule(authHandler, emailHandler, c.Guard, c.Redis))
	r.Add(modules.NewProductModule(productHandler, c.Guard, c.Redis))
	r.Add(modules.NewCartModule(cartHandler, c.Guard, c.Redis))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
