package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

// CartRepository keeps carts in carts/cart_lines. Mutate holds a row lock on
// the account's carts row for the whole read-modify-write.
type CartRepository struct {
	db DB
}

func NewCartRepository(db DB) *CartRepository {
	return &CartRepository{db: db}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *CartRepository) Get(ctx context.Context, accountID string) (*entity.Cart, error) {
	c := &entity.Cart{AccountID: accountID}
	err := r.db.QueryRow(ctx, `SELECT version, updated_at FROM carts WHERE account_id = $1`, accountID).
		Scan(&c.Version, &c.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if err := r.accountExists(ctx, r.db, accountID); err != nil {
			return nil, err
		}
		c.Lines = []entity.CartLine{}
		return c, nil
	case err != nil:
		return nil, storeErr("get cart", notFound(err, errs.ErrAccountNotFound))
	}

	lines, err := loadLines(ctx, r.db, accountID)
	if err != nil {
		return nil, storeErr("get cart lines", err)
	}
	c.Lines = lines
	return c, nil
}

func (r *CartRepository) Mutate(ctx context.Context, accountID string, fn repository.CartMutation) (*entity.Cart, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storeErr("begin cart tx", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO carts (account_id) VALUES ($1)
		ON CONFLICT (account_id) DO NOTHING
	`, accountID); err != nil {
		if code := pgCode(err); code == codeForeignKeyViolation || code == codeInvalidText {
			return nil, errs.ErrAccountNotFound
		}
		return nil, storeErr("ensure cart", err)
	}

	cur := entity.Cart{AccountID: accountID}
	if err := tx.QueryRow(ctx, `
		SELECT version, updated_at FROM carts WHERE account_id = $1 FOR UPDATE
	`, accountID).Scan(&cur.Version, &cur.UpdatedAt); err != nil {
		return nil, storeErr("lock cart", err)
	}
	if cur.Lines, err = loadLines(ctx, tx, accountID); err != nil {
		return nil, storeErr("load cart lines", err)
	}

	next, err := fn(cur)
	if err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM cart_lines WHERE account_id = $1`, accountID)
	for i, l := range next.Lines {
		batch.Queue(`
			INSERT INTO cart_lines (account_id, product_id, quantity, position)
			VALUES ($1, $2, $3, $4)
		`, accountID, l.ProductID, l.Quantity, i)
	}
	next.AccountID = accountID
	next.Version = cur.Version + 1
	next.UpdatedAt = time.Now().UTC()
	batch.Queue(`UPDATE carts SET version = $2, updated_at = $3 WHERE account_id = $1`,
		accountID, next.Version, next.UpdatedAt)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		switch pgCode(err) {
		case codeForeignKeyViolation, codeInvalidText:
			return nil, errs.ErrProductNotFound
		case codeOutOfRange, codeCheckViolation:
			return nil, errs.ErrInvalidQuantity
		}
		return nil, storeErr("write cart", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("commit cart", err)
	}
	if next.Lines == nil {
		next.Lines = []entity.CartLine{}
	}
	return &next, nil
}

func (r *CartRepository) accountExists(ctx context.Context, q querier, accountID string) error {
	var one int
	err := q.QueryRow(ctx, `SELECT 1 FROM accounts WHERE id = $1`, accountID).Scan(&one)
	if err != nil {
		return storeErr("check account", notFound(err, errs.ErrAccountNotFound))
	}
	return nil
}

func loadLines(ctx context.Context, q querier, accountID string) ([]entity.CartLine, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, quantity FROM cart_lines
		WHERE account_id = $1
		ORDER BY position
	`, accountID)
	if err != nil {
		return nil, err
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CartLine, error) {
		var l entity.CartLine
		err := row.Scan(&l.ProductID, &l.Quantity)
		return l, err
	})
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []entity.CartLine{}
	}
	return lines, nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
