package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type addPayload struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"qty"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&loginPayload{Email: "nope", Password: "abc"})

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "min length 6", details["password"])
}

func TestToDetailsQuantityAlias(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&addPayload{ProductID: "p1", Quantity: 0})

	assert.Equal(t, map[string]string{"quantity": "must be between 1 and 10000"}, ToDetails(err))
}

func TestToDetailsFallbacks(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}
