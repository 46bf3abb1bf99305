package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func userFromAccount(a *entity.Account) userDTO {
	return userDTO{ID: a.ID, Name: a.Name, Email: a.Email, Role: string(a.Role)}
}

func userFromIdentity(id entity.Identity) userDTO {
	return userDTO{ID: id.AccountID, Name: id.Name, Email: id.Email, Role: string(id.Role)}
}

type productDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func productFrom(p *entity.Product) productDTO {
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productsFrom(ps []*entity.Product) []productDTO {
	out := make([]productDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, productFrom(p))
	}
	return out
}

type cartProductDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Category string          `json:"category"`
}

type cartItemDTO struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   *cartProductDTO `json:"product"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type cartDTO struct {
	Cart      []cartItemDTO   `json:"cart"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func cartFrom(v *application.CartView) cartDTO {
	items := make([]cartItemDTO, 0, len(v.Items))
	for _, it := range v.Items {
		item := cartItemDTO{ProductID: it.ProductID, Quantity: it.Quantity, Subtotal: it.Subtotal}
		if it.Product != nil {
			item.Product = &cartProductDTO{
				ID:       it.Product.ID,
				Name:     it.Product.Name,
				Price:    it.Product.Price,
				ImageURL: it.Product.ImageURL,
				Category: it.Product.Category,
			}
		}
		items = append(items, item)
	}
	return cartDTO{Cart: items, Total: v.Total, ItemCount: v.ItemCount}
}
