package application

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
)

// CatalogService is the product source joined by the cart. Cache, Index and
// Images are optional.
type CatalogService struct {
	Products repo.ProductRepository
	Cache    ProductCache
	Index    ProductIndex
	Images   ImageStore
	Logger   *logrus.Logger
}

func NewCatalogService(products repo.ProductRepository, cache ProductCache, index ProductIndex, images ImageStore, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Products: products, Cache: cache, Index: index, Images: images, Logger: logger}
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
}

// ProductPatch holds the fields an update may change; nil means keep.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	ImageURL    *string
}

func validateProduct(p *entity.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("name is required: %w", errs.ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("price must not be negative: %w", errs.ErrInvalidProduct)
	case !entity.IsCategory(p.Category):
		return fmt.Errorf("unknown category %q: %w", p.Category, errs.ErrInvalidProduct)
	}
	return nil
}

func (s *CatalogService) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	if f.Category != "" && !entity.IsCategory(f.Category) {
		return []*entity.Product{}, nil
	}
	return s.Products.List(ctx, f)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*entity.Product, error) {
	if s.Cache != nil {
		if p, ok, err := s.Cache.Get(ctx, id); err == nil && ok {
			return p, nil
		} else if err != nil {
			s.warn(err, "product cache read failed", id)
		}
	}
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, p); err != nil {
			s.warn(err, "product cache write failed", id)
		}
	}
	return p, nil
}

// GetMany resolves ids through the cache first; unknown ids are omitted.
func (s *CatalogService) GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	missing := ids
	if s.Cache != nil {
		cached, err := s.Cache.GetMany(ctx, ids)
		if err != nil {
			s.warn(err, "product cache read failed", "")
		}
		missing = missing[:0:0]
		for _, id := range ids {
			if p, ok := cached[id]; ok {
				out[id] = p
			} else {
				missing = append(missing, id)
			}
		}
	}
	if len(missing) == 0 {
		return out, nil
	}
	found, err := s.Products.GetMany(ctx, missing)
	if err != nil {
		return nil, err
	}
	fresh := make([]*entity.Product, 0, len(found))
	for id, p := range found {
		out[id] = p
		fresh = append(fresh, p)
	}
	if s.Cache != nil {
		if err := s.Cache.SetMany(ctx, fresh); err != nil {
			s.warn(err, "product cache write failed", "")
		}
	}
	return out, nil
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.reindex(ctx, p)
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, patch ProductPatch) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ID)
	s.reindex(ctx, p)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Products.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.warn(err, "product unindex failed", id)
		}
	}
	if s.Images != nil && p.ImageURL != "" {
		if err := s.Images.Delete(ctx, p.ImageURL); err != nil {
			s.warn(err, "product image delete failed", id)
		}
	}
	return p, nil
}

// UploadImage stores a new image and points the product at it.
func (s *CatalogService) UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Product, error) {
	if s.Images == nil {
		return nil, fmt.Errorf("image storage not configured: %w", errs.ErrStoreUnavailable)
	}
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.Images.Upload(ctx, p.ID, filename, contentType, r)
	if err != nil {
		return nil, err
	}
	previous := p.ImageURL
	p.ImageURL = url
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	if previous != "" {
		if err := s.Images.Delete(ctx, previous); err != nil {
			s.warn(err, "previous image delete failed", id)
		}
	}
	s.invalidate(ctx, p.ID)
	s.reindex(ctx, p)
	return p, nil
}

// Search uses the search index when present and falls back to a name match.
func (s *CatalogService) Search(ctx context.Context, q, category string, size int) ([]*entity.Product, error) {
	if size <= 0 || size > 50 {
		size = 20
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return []*entity.Product{}, nil
	}
	if s.Index == nil {
		return s.Products.SearchByName(ctx, q, category, size)
	}
	ids, err := s.Index.Search(ctx, q, category, size)
	if err != nil {
		s.warn(err, "product search failed, using store", "")
		return s.Products.SearchByName(ctx, q, category, size)
	}
	found, err := s.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := found[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, id); err != nil {
		s.warn(err, "product cache invalidate failed", id)
	}
}

func (s *CatalogService) reindex(ctx context.Context, p *entity.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil {
		s.warn(err, "product index failed", p.ID)
	}
}

func (s *CatalogService) warn(err error, msg, productID string) {
	if s.Logger == nil {
		return
	}
	entry := s.Logger.WithError(err)
	if productID != "" {
		entry = entry.WithField("product_id", productID)
	}
	entry.Warn(msg)
}
