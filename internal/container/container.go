package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/application"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/internal/infrastructure/elastic"
	"github.com/oksasatya/storefront-api/internal/infrastructure/gcs"
	"github.com/oksasatya/storefront-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/storefront-api/internal/infrastructure/postgres"
	"github.com/oksasatya/storefront-api/internal/infrastructure/redisstore"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

// Container owns the infrastructure clients and the services built on them.
// Optional clients stay nil when their config is empty.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	Accounts repo.AccountRepository
	Products repo.ProductRepository
	Carts    repo.CartRepository

	Guard   *application.AccessGuard
	Auth    *application.AuthService
	Catalog *application.CatalogService
	Cart    *application.CartService
	Mail    application.Publisher
}

// New connects every configured backend and wires the services.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}
	if err := c.connect(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.wire(ctx)
	return c, nil
}

func (c *Container) connect(ctx context.Context) error {
	cfg := c.Config

	switch cfg.StoreDriver {
	case "memory":
		store := memory.NewStore()
		c.Accounts = memory.NewAccountRepository(store)
		c.Products = memory.NewProductRepository(store)
		c.Carts = memory.NewCartRepository(store)
		c.Logger.Warn("using in-memory store; data is lost on restart")
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.PGPool = pool
		c.Accounts = pginfra.NewAccountRepository(pool)
		c.Products = pginfra.NewProductRepository(pool)
		c.Carts = pginfra.NewCartRepository(pool)
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		c.Redis = rdb
	}

	if cfg.GCSBucket != "" {
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return fmt.Errorf("init gcs: %w", err)
		}
		c.GCS = client
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			return fmt.Errorf("init elasticsearch: %w", err)
		}
		c.ES = es
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			// email is best effort; the API runs without the queue
			c.Logger.WithError(err).Warn("rabbitmq unavailable; emails will not be enqueued")
		} else {
			c.RabbitPub = pub
		}
	}
	return nil
}

func (c *Container) wire(ctx context.Context) {
	cfg := c.Config
	c.JWT = helpers.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	c.Cookies = helpers.NewCookie(cfg.CookieDomain, cfg.IsProduction())

	var (
		revocations application.RevocationStore
		cache       application.ProductCache
		index       application.ProductIndex
		images      application.ImageStore
	)
	if c.Redis != nil {
		revocations = redisstore.NewRevocationStore(c.Redis)
		cache = redisstore.NewProductCache(c.Redis, cfg.ProductCacheTTL)
	}
	if c.ES != nil {
		idx := elastic.NewProductIndex(c.ES, cfg.ESProductsIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			c.Logger.WithError(err).Warn("product index not ready; search falls back to the database")
		}
		index = idx
	}
	if c.GCS != nil {
		images = gcs.NewImageStore(c.GCS, cfg.GCSBucket)
	}
	if c.RabbitPub != nil {
		c.Mail = c.RabbitPub
	}

	c.Guard = application.NewAccessGuard(c.JWT, revocations)
	c.Auth = application.NewAuthService(c.Accounts, c.JWT, revocations, c.Mail, cfg, c.Logger)
	c.Catalog = application.NewCatalogService(c.Products, cache, index, images, c.Logger)
	c.Cart = application.NewCartService(c.Carts, c.Catalog, c.Mail, cfg, c.Logger)
}

// Close releases every client that was opened.
func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
