package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// 商品1件をIDでキャッシュする
type ProductRedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductRedisCache(client *redis.Client, ttl time.Duration) *ProductRedisCache {
	return &ProductRedisCache{client: client, ttl: ttl}
}

func (c *ProductRedisCache) Get(ctx context.Context, id string) (model.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Product{}, ErrCacheMiss
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("redis get failed: %w", err)
	}

	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Product{}, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return p, nil
}

func (c *ProductRedisCache) Set(ctx context.Context, p model.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}
	if err := c.client.Set(ctx, productKey(p.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *ProductRedisCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// REDIS_ADDR未設定のとき
type NoopProductCache struct{}

func (NoopProductCache) Get(context.Context, string) (model.Product, error) {
	return model.Product{}, ErrCacheMiss
}
func (NoopProductCache) Set(context.Context, model.Product) error { return nil }
func (NoopProductCache) Delete(context.Context, string) error     { return nil }

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
