package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories accepted by the catalog.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Home & Kitchen",
	"Beauty & Personal Care",
	"Books",
	"Sports & Outdoors",
	"Toys & Games",
	"Grocery",
	"Furniture",
	"Automotive",
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows a catalog listing. Nil bounds are open.
type ProductFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (f ProductFilter) Match(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}
