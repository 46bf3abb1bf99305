// Package errs holds the error taxonomy shared by every layer.
// Lower layers wrap these with fmt.Errorf("...: %w", err); handlers match with errors.Is.
package errs

import "errors"

var (
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrAccountNotFound   = errors.New("email is not registered")
	ErrInvalidCredential = errors.New("invalid password")
	ErrInvalidAccount    = errors.New("invalid account details")

	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrAccessDenied = errors.New("access denied")

	ErrItemNotInCart    = errors.New("product not in cart")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrStoreUnavailable = errors.New("store unavailable")
)
