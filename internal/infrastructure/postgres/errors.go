package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/storefront-api/internal/domain/errs"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
	codeOutOfRange          = "22003"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// storeErr wraps anything that is not already a domain error as ErrStoreUnavailable.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		errs.ErrDuplicateAccount, errs.ErrAccountNotFound, errs.ErrProductNotFound,
		errs.ErrItemNotInCart, errs.ErrInvalidQuantity, errs.ErrInvalidProduct, errs.ErrEmptyCart,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %v", op, errs.ErrStoreUnavailable, err)
}

// notFound maps pgx.ErrNoRows and malformed uuid input to the given domain error.
func notFound(err error, domain error) error {
	if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidText {
		return domain
	}
	return err
}
