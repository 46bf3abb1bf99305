package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/pkg/response"
)

type errorStatus struct {
	err    error
	status int
}

// statusTable is checked in order; the first match wins.
var statusTable = []errorStatus{
	{errs.ErrMissingToken, http.StatusUnauthorized},
	{errs.ErrInvalidToken, http.StatusUnauthorized},
	{errs.ErrAccessDenied, http.StatusForbidden},
	{errs.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{errs.ErrItemNotInCart, http.StatusNotFound},
	{errs.ErrProductNotFound, http.StatusNotFound},
	{errs.ErrAccountNotFound, http.StatusNotFound},
	{errs.ErrEmptyCart, http.StatusConflict},
	{errs.ErrDuplicateAccount, http.StatusBadRequest},
	{errs.ErrInvalidCredential, http.StatusBadRequest},
	{errs.ErrInvalidAccount, http.StatusBadRequest},
	{errs.ErrInvalidQuantity, http.StatusBadRequest},
	{errs.ErrInvalidProduct, http.StatusBadRequest},
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFor returns the sentinel's message so internal details stay out of responses.
func messageFor(err error) string {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.err.Error()
		}
	}
	return "internal server error"
}

func fail(c *gin.Context, err error) {
	status := StatusFor(err)
	response.Error[any](c, status, messageFor(err), nil)
}

// failLogin reports credential problems as 400, including an unknown email.
func failLogin(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrAccountNotFound) || errors.Is(err, errs.ErrInvalidCredential) {
		response.Error[any](c, http.StatusBadRequest, messageFor(err), nil)
		return
	}
	fail(c, err)
}
