package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

const productPrefix = "catalog:product:"

// ProductCache is a read-through cache of single products keyed by id.
type ProductCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewProductCache(rdb redis.Cmdable, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{rdb: rdb, ttl: ttl}
}

type cachedProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func productKey(id string) string { return productPrefix + id }

func (pc *ProductCache) Get(ctx context.Context, id string) (*entity.Product, bool, error) {
	var cp cachedProduct
	ok, err := helpers.RedisGetJSON(ctx, pc.rdb, productKey(id), &cp)
	if err != nil || !ok {
		return nil, false, err
	}
	p := entity.Product(cp)
	return &p, true, nil
}

// GetMany returns whatever ids are cached; misses are simply absent from the map.
func (pc *ProductCache) GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	vals, err := pc.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var cp cachedProduct
		if err := json.Unmarshal([]byte(s), &cp); err != nil {
			continue
		}
		p := entity.Product(cp)
		out[ids[i]] = &p
	}
	return out, nil
}

func (pc *ProductCache) Set(ctx context.Context, p *entity.Product) error {
	return helpers.RedisSetJSON(ctx, pc.rdb, productKey(p.ID), cachedProduct(*p), pc.ttl)
}

func (pc *ProductCache) SetMany(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	_, err := pc.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, p := range products {
			if err := helpers.RedisSetJSON(ctx, pipe, productKey(p.ID), cachedProduct(*p), pc.ttl); err != nil {
				return err
			}
		}
		return nil
	})
	return err
}

func (pc *ProductCache) Delete(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, pc.rdb, productKey(id))
}
