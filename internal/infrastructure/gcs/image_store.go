package gcs

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore writes product images to a GCS bucket under products/<id>/.
type ImageStore struct {
	client *storage.Client
	bucket string
}

func NewImageStore(client *storage.Client, bucket string) *ImageStore {
	return &ImageStore{client: client, bucket: bucket}
}

// ObjectPath builds the object name for a new image of productID.
func ObjectPath(productID, filename, contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	defExt, ok := allowedImageTypes[ct]
	if !ok {
		return "", fmt.Errorf("content type %q: %w", contentType, errs.ErrInvalidProduct)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 5 {
		ext = defExt
	}
	return path.Join("products", productID, uuid.NewString()+ext), nil
}

func (s *ImageStore) Upload(ctx context.Context, productID, filename, contentType string, r io.Reader) (string, error) {
	objectPath, err := ObjectPath(productID, filename, contentType)
	if err != nil {
		return "", err
	}
	url, err := helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload image: %w: %v", errs.ErrStoreUnavailable, err)
	}
	return url, nil
}

// Delete removes a previously uploaded image given its public URL. Foreign URLs are ignored.
func (s *ImageStore) Delete(ctx context.Context, url string) error {
	prefix := helpers.PublicURL(s.bucket, "")
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, strings.TrimPrefix(url, prefix))
}
