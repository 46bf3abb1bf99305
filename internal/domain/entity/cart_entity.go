package entity

import (
	"fmt"
	"time"

	"github.com/oksasatya/storefront-api/internal/domain/errs"
)

// MaxLineQuantity caps a single line so quantities stay well inside int32.
const MaxLineQuantity = 10000

// CartLine pairs a catalog product with a quantity that is always >= 1.
type CartLine struct {
	ProductID string
	Quantity  int
}

// Cart is owned by exactly one account and holds at most one line per product.
// The transitions below are pure: they return a new Cart and never touch the receiver.
type Cart struct {
	AccountID string
	Lines     []CartLine
	Version   int64
	UpdatedAt time.Time
}

func (c Cart) index(productID string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) withLines(lines []CartLine) Cart {
	c.Lines = lines
	return c
}

func (c Cart) copyLines() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}

// Line returns the line for productID, if present.
func (c Cart) Line(productID string) (CartLine, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// AddOrMerge increments an existing line or appends a new one.
func (c Cart) AddOrMerge(productID string, quantity int) (Cart, error) {
	if quantity < 1 || quantity > MaxLineQuantity {
		return c, fmt.Errorf("add %d: %w", quantity, errs.ErrInvalidQuantity)
	}
	lines := c.copyLines()
	if i := c.index(productID); i >= 0 {
		if lines[i].Quantity > MaxLineQuantity-quantity {
			return c, fmt.Errorf("add %d to %d: %w", quantity, lines[i].Quantity, errs.ErrInvalidQuantity)
		}
		lines[i].Quantity += quantity
		return c.withLines(lines), nil
	}
	return c.withLines(append(lines, CartLine{ProductID: productID, Quantity: quantity})), nil
}

// Decrement lowers a line's quantity and drops the line once it would fall below 1.
func (c Cart) Decrement(productID string, amount int) (Cart, error) {
	if amount < 1 {
		return c, fmt.Errorf("decrement %d: %w", amount, errs.ErrInvalidQuantity)
	}
	i := c.index(productID)
	if i < 0 {
		return c, errs.ErrItemNotInCart
	}
	lines := c.copyLines()
	lines[i].Quantity -= amount
	if lines[i].Quantity < 1 {
		lines = append(lines[:i], lines[i+1:]...)
	}
	return c.withLines(lines), nil
}

// Remove drops the line for productID; a missing line is not an error.
func (c Cart) Remove(productID string) Cart {
	i := c.index(productID)
	if i < 0 {
		return c.withLines(c.copyLines())
	}
	lines := c.copyLines()
	return c.withLines(append(lines[:i], lines[i+1:]...))
}

func (c Cart) Clear() Cart {
	return c.withLines([]CartLine{})
}

// ItemCount is the sum of all quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		ids = append(ids, l.ProductID)
	}
	return ids
}
