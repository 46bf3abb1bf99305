package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/storefront-api/internal/domain/errs"
)

const revokedPrefix = "session:revoked:"

// RevocationStore is a denylist of session token ids. Entries expire with the token.
type RevocationStore struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewRevocationStore(rdb redis.Cmdable) *RevocationStore {
	return &RevocationStore{rdb: rdb, now: time.Now}
}

func revokedKey(tokenID string) string { return revokedPrefix + tokenID }

// Revoke denylists tokenID until the given expiry. Already expired tokens are skipped.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w: %v", errs.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w: %v", errs.ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
