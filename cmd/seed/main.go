package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/container"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

var sampleProducts = []application.ProductInput{
	{Name: "Wireless Headphones", Description: "Over-ear, 30h battery", Price: decimal.RequireFromString("89.99"), Category: "Electronics"},
	{Name: "Cotton T-Shirt", Description: "Crew neck, unisex", Price: decimal.RequireFromString("14.50"), Category: "Clothing"},
	{Name: "Chef's Knife", Description: "8 inch stainless steel", Price: decimal.RequireFromString("42.00"), Category: "Home & Kitchen"},
	{Name: "The Go Programming Language", Description: "Donovan & Kernighan", Price: decimal.RequireFromString("34.95"), Category: "Books"},
	{Name: "Yoga Mat", Description: "6mm non-slip", Price: decimal.RequireFromString("25.00"), Category: "Sports & Outdoors"},
}

// seed bootstraps the first admin from ADMIN_EMAIL/ADMIN_PASSWORD and fills an
// empty catalog with sample products.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer c.Close()

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin bootstrap")
	} else {
		a, err := c.Auth.Register(ctx, application.RegisterInput{
			Name:     cfg.AdminName,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Role:     entity.RoleAdmin,
		})
		switch {
		case errors.Is(err, errs.ErrDuplicateAccount):
			logger.WithField("email", cfg.AdminEmail).Info("admin already exists")
		case err != nil:
			log.Fatalf("failed to seed admin: %v", err)
		default:
			logger.WithFields(logrus.Fields{"id": a.ID, "email": a.Email}).Info("seeded admin")
		}
	}

	existing, err := c.Catalog.List(ctx, entity.ProductFilter{})
	if err != nil {
		log.Fatalf("failed to list products: %v", err)
	}
	if len(existing) > 0 {
		logger.WithField("count", len(existing)).Info("catalog not empty; skipping sample products")
		return
	}
	for _, in := range sampleProducts {
		p, err := c.Catalog.Create(ctx, in)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", in.Name, err)
		}
		logger.WithFields(logrus.Fields{"id": p.ID, "name": p.Name}).Info("seeded product")
	}
}
