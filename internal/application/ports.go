package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// Publisher enqueues background jobs (email delivery).
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RevocationStore is the server-side denylist of session token ids.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type ProductCache interface {
	Get(ctx context.Context, id string) (*entity.Product, bool, error)
	GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	Set(ctx context.Context, p *entity.Product) error
	SetMany(ctx context.Context, products []*entity.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductIndex is the full-text search mirror of the catalog.
type ProductIndex interface {
	Index(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q, category string, size int) ([]string, error)
}

type ImageStore interface {
	Upload(ctx context.Context, productID, filename, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}
