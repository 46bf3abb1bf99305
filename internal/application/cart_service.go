package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/mailer"
	mailtpl "github.com/oksasatya/storefront-api/pkg/mailer/templates"
)

// Catalog is what the cart needs from the product source.
type Catalog interface {
	Get(ctx context.Context, id string) (*entity.Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}

// CartService runs every cart operation as load, pure transform, persist,
// then joins the result against the live catalog.
type CartService struct {
	Carts   repo.CartRepository
	Catalog Catalog
	Mail    Publisher
	Config  *config.Config
	Logger  *logrus.Logger
}

func NewCartService(carts repo.CartRepository, catalog Catalog, mail Publisher, cfg *config.Config, logger *logrus.Logger) *CartService {
	return &CartService{Carts: carts, Catalog: catalog, Mail: mail, Config: cfg, Logger: logger}
}

// CartItem is one cart line joined with catalog data. Product is nil when the
// product is no longer in the catalog.
type CartItem struct {
	ProductID string
	Quantity  int
	Product   *entity.Product
	Subtotal  decimal.Decimal
}

type CartView struct {
	AccountID string
	Items     []CartItem
	Total     decimal.Decimal
	ItemCount int
	Version   int64
	UpdatedAt time.Time
}

// Order is the snapshot taken at checkout.
type Order struct {
	ID     string
	Cart   CartView
	Placed time.Time
}

func (s *CartService) Get(ctx context.Context, accountID string) (*CartView, error) {
	c, err := s.Carts.Get(ctx, accountID)
	if err != nil {
		return nil, s.storeErr("get cart", err)
	}
	return s.join(ctx, c)
}

// AddOrMerge adds quantity to the product's line, creating it if needed.
func (s *CartService) AddOrMerge(ctx context.Context, accountID, productID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("add %d: %w", quantity, errs.ErrInvalidQuantity)
	}
	if _, err := s.Catalog.Get(ctx, productID); err != nil {
		return nil, s.storeErr("lookup product", err)
	}
	return s.mutate(ctx, accountID, func(c entity.Cart) (entity.Cart, error) {
		return c.AddOrMerge(productID, quantity)
	})
}

func (s *CartService) Decrement(ctx context.Context, accountID, productID string, amount int) (*CartView, error) {
	if amount < 1 {
		return nil, fmt.Errorf("decrement %d: %w", amount, errs.ErrInvalidQuantity)
	}
	return s.mutate(ctx, accountID, func(c entity.Cart) (entity.Cart, error) {
		return c.Decrement(productID, amount)
	})
}

func (s *CartService) Remove(ctx context.Context, accountID, productID string) (*CartView, error) {
	return s.mutate(ctx, accountID, func(c entity.Cart) (entity.Cart, error) {
		return c.Remove(productID), nil
	})
}

func (s *CartService) Clear(ctx context.Context, accountID string) (*CartView, error) {
	return s.mutate(ctx, accountID, func(c entity.Cart) (entity.Cart, error) {
		return c.Clear(), nil
	})
}

// Checkout snapshots the joined cart, empties it and enqueues a receipt.
// There is no payment step.
func (s *CartService) Checkout(ctx context.Context, id entity.Identity) (*Order, error) {
	// The receipt view is built before the lines are cleared so a catalog
	// failure leaves the cart intact.
	var view *CartView
	_, err := s.Carts.Mutate(ctx, id.AccountID, func(c entity.Cart) (entity.Cart, error) {
		if len(c.Lines) == 0 {
			return c, errs.ErrEmptyCart
		}
		v, err := s.join(ctx, &c)
		if err != nil {
			return c, err
		}
		view = v
		return c.Clear(), nil
	})
	if err != nil {
		return nil, s.storeErr("checkout", err)
	}
	order := &Order{ID: uuid.NewString(), Cart: *view, Placed: time.Now().UTC()}
	s.enqueueReceipt(ctx, id, order)
	return order, nil
}

func (s *CartService) mutate(ctx context.Context, accountID string, fn repo.CartMutation) (*CartView, error) {
	c, err := s.Carts.Mutate(ctx, accountID, fn)
	if err != nil {
		return nil, s.storeErr("update cart", err)
	}
	return s.join(ctx, c)
}

func (s *CartService) join(ctx context.Context, c *entity.Cart) (*CartView, error) {
	products, err := s.Catalog.GetMany(ctx, c.ProductIDs())
	if err != nil {
		return nil, s.storeErr("join catalog", err)
	}
	view := &CartView{
		AccountID: c.AccountID,
		Items:     make([]CartItem, 0, len(c.Lines)),
		Total:     decimal.Zero,
		ItemCount: c.ItemCount(),
		Version:   c.Version,
		UpdatedAt: c.UpdatedAt,
	}
	for _, l := range c.Lines {
		item := CartItem{ProductID: l.ProductID, Quantity: l.Quantity, Subtotal: decimal.Zero}
		if p, ok := products[l.ProductID]; ok {
			item.Product = p
			item.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			view.Total = view.Total.Add(item.Subtotal)
		}
		view.Items = append(view.Items, item)
	}
	return view, nil
}

// storeErr passes domain errors through and tags everything else as unavailable.
func (s *CartService) storeErr(op string, err error) error {
	for _, known := range []error{
		errs.ErrAccountNotFound, errs.ErrProductNotFound, errs.ErrItemNotInCart,
		errs.ErrInvalidQuantity, errs.ErrEmptyCart, errs.ErrStoreUnavailable,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	if s.Logger != nil {
		s.Logger.WithError(err).Error(op + " failed")
	}
	return unavailable(op, err)
}

func (s *CartService) enqueueReceipt(ctx context.Context, id entity.Identity, o *Order) {
	if s.Mail == nil {
		return
	}
	items := make([]mailtpl.ReceiptItem, 0, len(o.Cart.Items))
	for _, it := range o.Cart.Items {
		ri := mailtpl.ReceiptItem{Name: it.ProductID, Quantity: it.Quantity, Subtotal: it.Subtotal.StringFixed(2)}
		if it.Product != nil {
			ri.Name = it.Product.Name
			ri.Price = it.Product.Price.StringFixed(2)
		}
		items = append(items, ri)
	}
	data := mailtpl.NewOrderReceiptData(s.Config, id.Name, id.Email,
		mailtpl.WithTime(o.Placed),
		mailtpl.WithOrder(o.ID, items, o.Cart.ItemCount, o.Cart.Total.StringFixed(2)),
	)
	job := mailer.EmailJob{To: id.Email, Template: mailtpl.OrderReceipt, Data: data}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("enqueue order receipt failed")
	}
}
