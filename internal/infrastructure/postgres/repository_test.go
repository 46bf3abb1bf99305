package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, 4, 1, time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../db/migrations/000001_init.up.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE cart_lines, carts, products, accounts CASCADE`)
	require.NoError(t, err)
	return pool
}

func seedAccount(t *testing.T, repo *AccountRepository, email string) *entity.Account {
	t.Helper()
	a := &entity.Account{Name: "Alice", Email: email, PasswordHash: "x", Role: entity.RoleStandard}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func seedProduct(t *testing.T, repo *ProductRepository, name, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Price: decimal.RequireFromString(price), Category: "Books"}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestAccountRepositoryUniqueEmail(t *testing.T) {
	pool := testPool(t)
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	a := seedAccount(t, repo, "Alice@Example.com")
	assert.Equal(t, "alice@example.com", a.Email)

	err := repo.Create(ctx, &entity.Account{Name: "A2", Email: " ALICE@example.com", PasswordHash: "y", Role: entity.RoleStandard})
	assert.ErrorIs(t, err, errs.ErrDuplicateAccount)

	got, err := repo.GetByEmail(ctx, "ALICE@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestCartRepositoryMutate(t *testing.T) {
	pool := testPool(t)
	accounts := NewAccountRepository(pool)
	products := NewProductRepository(pool)
	carts := NewCartRepository(pool)
	ctx := context.Background()

	a := seedAccount(t, accounts, "bob@example.com")
	p1 := seedProduct(t, products, "Go in Action", "30.00")
	p2 := seedProduct(t, products, "SQL Basics", "12.50")

	empty, err := carts.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Lines)

	_, err = carts.Mutate(ctx, a.ID, func(c entity.Cart) (entity.Cart, error) { return c.AddOrMerge(p2.ID, 1) })
	require.NoError(t, err)
	got, err := carts.Mutate(ctx, a.ID, func(c entity.Cart) (entity.Cart, error) { return c.AddOrMerge(p1.ID, 2) })
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)

	stored, err := carts.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.CartLine{{ProductID: p2.ID, Quantity: 1}, {ProductID: p1.ID, Quantity: 2}}, stored.Lines)

	_, err = products.Delete(ctx, p2.ID)
	require.NoError(t, err)
	stored, err = carts.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.CartLine{{ProductID: p1.ID, Quantity: 2}}, stored.Lines)

	_, err = carts.Mutate(ctx, "7d4f6a1e-0000-4000-8000-000000000000", func(c entity.Cart) (entity.Cart, error) { return c, nil })
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestCartRepositoryConcurrentMutate(t *testing.T) {
	pool := testPool(t)
	a := seedAccount(t, NewAccountRepository(pool), "carol@example.com")
	p := seedProduct(t, NewProductRepository(pool), "Lamp", "10.00")
	carts := NewCartRepository(pool)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := carts.Mutate(context.Background(), a.ID, func(c entity.Cart) (entity.Cart, error) { return c.AddOrMerge(p.ID, 1) })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := carts.Get(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 8, got.Lines[0].Quantity)
}

func TestProductRepositoryListAndMany(t *testing.T) {
	pool := testPool(t)
	repo := NewProductRepository(pool)
	ctx := context.Background()

	cheap := seedProduct(t, repo, "Pocket Guide", "5.00")
	pricey := seedProduct(t, repo, "Hardcover Atlas", "80.00")

	floor := decimal.RequireFromString("10")
	list, err := repo.List(ctx, entity.ProductFilter{Category: "Books", MinPrice: &floor})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pricey.ID, list[0].ID)
	assert.True(t, pricey.Price.Equal(list[0].Price))

	many, err := repo.GetMany(ctx, []string{cheap.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, many, 1)
	assert.Contains(t, many, cheap.ID)

	found, err := repo.SearchByName(ctx, "atlas", "", 5)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, pricey.ID, found[0].ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
}
