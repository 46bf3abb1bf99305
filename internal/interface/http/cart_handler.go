package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/pkg/response"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

// decrementStep is the fixed amount PATCH /cart/:productId removes.
const decrementStep = 1

type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

// addToCartRequest accepts productId as an alias of product_id.
type addToCartRequest struct {
	ProductID    string `json:"product_id"`
	ProductIDAlt string `json:"productId"`
	Quantity     int    `json:"quantity" binding:"qty"`
}

func (r addToCartRequest) productID() string {
	if r.ProductID != "" {
		return r.ProductID
	}
	return r.ProductIDAlt
}

func identity(c *gin.Context) (entity.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		fail(c, errs.ErrMissingToken)
	}
	return id, ok
}

func (h *CartHandler) render(c *gin.Context, v *application.CartView, err error, msg string) {
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cartFrom(v), msg, nil)
}

// Get GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	v, err := h.Svc.Get(c.Request.Context(), id.AccountID)
	h.render(c, v, err, "cart")
}

// Add POST /api/cart {product_id, quantity}
func (h *CartHandler) Add(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	productID := req.productID()
	if productID == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"product_id": "is required"})
		return
	}
	v, err := h.Svc.AddOrMerge(c.Request.Context(), id.AccountID, productID, req.Quantity)
	h.render(c, v, err, "item added")
}

// Decrement PATCH /api/cart/:productId
func (h *CartHandler) Decrement(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	v, err := h.Svc.Decrement(c.Request.Context(), id.AccountID, c.Param("productId"), decrementStep)
	h.render(c, v, err, "item decremented")
}

// Remove DELETE /api/cart/:productId
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	v, err := h.Svc.Remove(c.Request.Context(), id.AccountID, c.Param("productId"))
	h.render(c, v, err, "item removed")
}

// Clear DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	v, err := h.Svc.Clear(c.Request.Context(), id.AccountID)
	h.render(c, v, err, "cart cleared")
}

// Checkout POST /api/cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	order, err := h.Svc.Checkout(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	view := cartFrom(&order.Cart)
	response.Success(c, http.StatusOK, gin.H{
		"order_id":   order.ID,
		"cart":       view.Cart,
		"total":      view.Total,
		"item_count": view.ItemCount,
		"placed_at":  order.Placed,
	}, "order placed", nil)
}
