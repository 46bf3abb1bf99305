package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/storefront-api/internal/domain/errs"
)

// unavailable tags err as ErrStoreUnavailable unless it already is.
func unavailable(op string, err error) error {
	if errors.Is(err, errs.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, errs.ErrStoreUnavailable, err)
}
