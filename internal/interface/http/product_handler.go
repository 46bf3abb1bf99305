package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/pkg/response"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

// MaxImageBytes bounds product image uploads.
const MaxImageBytes = 5 << 20

type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=5000"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	ImageURL    string           `json:"image_url" binding:"omitempty,url"`
}

type updateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,url"`
}

// List GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	ps, err := h.Svc.List(c.Request.Context(), entity.ProductFilter{})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": productsFrom(ps)}, "products", gin.H{"count": len(ps)})
}

// Filter GET /api/products/filter?category=&min_price=&max_price=
func (h *ProductHandler) Filter(c *gin.Context) {
	f := entity.ProductFilter{Category: c.Query("category")}
	var ok bool
	if f.MinPrice, ok = h.priceParam(c, "min_price", "minPrice"); !ok {
		return
	}
	if f.MaxPrice, ok = h.priceParam(c, "max_price", "maxPrice"); !ok {
		return
	}
	ps, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": productsFrom(ps)}, "products", gin.H{"count": len(ps)})
}

// priceParam reads an optional decimal query parameter under either name.
func (h *ProductHandler) priceParam(c *gin.Context, names ...string) (*decimal.Decimal, bool) {
	for _, name := range names {
		raw, present := c.GetQuery(name)
		if !present || raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{names[0]: "must be a number"})
			return nil, false
		}
		return &d, true
	}
	return nil, true
}

// Search GET /api/products/search?q=&category=&size=
func (h *ProductHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	ps, err := h.Svc.Search(c.Request.Context(), c.Query("q"), c.Query("category"), size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": productsFrom(ps)}, "search results", gin.H{"count": len(ps)})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": productFrom(p)}, "product", nil)
}

// Create POST /api/products (admin)
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), application.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": productFrom(p)}, "product created", nil)
}

// Update PUT /api/products/:id (admin); absent fields are kept.
func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": productFrom(p)}, "product updated", nil)
}

// Delete DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	p, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": productFrom(p)}, "product deleted", nil)
}

// UploadImage POST /api/products/:id/image (admin, multipart field "image")
func (h *ProductHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes)
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "is required (max 5MB)"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "unreadable file"})
		return
	}
	defer func() { _ = f.Close() }()

	p, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": productFrom(p)}, "image uploaded", nil)
}
