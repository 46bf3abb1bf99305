package application

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/infrastructure/memory"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/mailer"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Get(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockCatalog) GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	args := m.Called(ctx, ids)
	ps, _ := args.Get(0).(map[string]*entity.Product)
	return ps, args.Error(1)
}

type mockRevocations struct {
	mock.Mock
}

func (m *mockRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	args := m.Called(ctx, tokenID, until)
	return args.Error(0)
}

func (m *mockRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) Index(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockIndex) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndex) Search(ctx context.Context, q, category string, size int) ([]string, error) {
	args := m.Called(ctx, q, category, size)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type mockImages struct {
	mock.Mock
}

func (m *mockImages) Upload(ctx context.Context, productID, filename, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, productID, filename, contentType, r)
	return args.String(0), args.Error(1)
}

func (m *mockImages) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

// mapCache is an in-process ProductCache that counts hits.
type mapCache struct {
	mu    sync.Mutex
	items map[string]entity.Product
	hits  int
}

func newMapCache() *mapCache { return &mapCache{items: map[string]entity.Product{}} }

func (c *mapCache) Get(_ context.Context, id string) (*entity.Product, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.items[id]
	if ok {
		c.hits++
	}
	return &p, ok, nil
}

func (c *mapCache) GetMany(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]*entity.Product{}
	for _, id := range ids {
		if p, ok := c.items[id]; ok {
			c.hits++
			cp := p
			out[id] = &cp
		}
	}
	return out, nil
}

func (c *mapCache) Set(_ context.Context, p *entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[p.ID] = *p
	return nil
}

func (c *mapCache) SetMany(ctx context.Context, ps []*entity.Product) error {
	for _, p := range ps {
		_ = c.Set(ctx, p)
	}
	return nil
}

func (c *mapCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

func (c *mapCache) has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[id]
	return ok
}

// env wires the services on top of the memory store.
type env struct {
	store    *memory.Store
	products *memory.ProductRepository
	jwt      *helpers.JWTManager
	auth     *AuthService
	guard    *AccessGuard
	catalog  *CatalogService
	carts    *CartService
}

func newEnv() *env {
	cfg := &config.Config{BcryptCost: 4, CompanyName: "Acme"}
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	jwt := helpers.NewJWTManager("test-secret", 24*time.Hour)
	logger := helpers.NewDiscardLogger()

	catalog := NewCatalogService(products, nil, nil, nil, logger)
	return &env{
		store:    store,
		products: products,
		jwt:      jwt,
		auth:     NewAuthService(memory.NewAccountRepository(store), jwt, nil, nil, cfg, logger),
		guard:    NewAccessGuard(jwt, nil),
		catalog:  catalog,
		carts:    NewCartService(memory.NewCartRepository(store), catalog, nil, cfg, logger),
	}
}

func isEmailJob(template, to string) any {
	return mock.MatchedBy(func(job mailer.EmailJob) bool {
		return job.Template == template && job.To == to
	})
}
