package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

const (
	cachePrefix = "product:"

	// tombstone marks a key whose product is being written. Readers treat it as a
	// miss and never replace it, since repopulation only uses SETNX.
	tombstone    = "-"
	tombstoneTTL = 30 * time.Second
)

// CachedProductStore puts a Redis cache-aside layer in front of FindByID.
//
// Save and DeleteByID write a tombstone over the key before touching the store and
// again after. If the first tombstone cannot be written the store is left alone and
// the call fails, so the cache never holds a product the store has changed or
// removed. A reader that loaded the old product while a write was in flight cannot
// cache it: SETNX loses to the tombstone. Read-side cache failures are logged and
// bypassed.
type CachedProductStore struct {
	next   domain.ProductStore
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

var _ domain.ProductStore = (*CachedProductStore)(nil)

func NewCachedProductStore(next domain.ProductStore, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedProductStore {
	return &CachedProductStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(id string) string {
	return cachePrefix + id
}

func (c *CachedProductStore) FindByID(ctx context.Context, id string) (domain.Product, bool, error) {
	cacheable := false

	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil && string(data) == tombstone:
		// write in flight
	case err == nil:
		var product domain.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return product, true, nil
		}
		c.logger.Warn("Discarding undecodable cache entry", zap.String("product_id", id))
	case errors.Is(err, redis.Nil):
		cacheable = true
	default:
		c.logger.Warn("Cache get failed", zap.String("product_id", id), zap.Error(err))
	}

	product, found, err := c.next.FindByID(ctx, id)
	if err != nil || !found || !cacheable {
		return product, found, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := c.client.SetNX(ctx, cacheKey(id), data, c.ttl).Err(); err != nil {
			c.logger.Warn("Cache set failed", zap.String("product_id", id), zap.Error(err))
		}
	}
	return product, true, nil
}

func (c *CachedProductStore) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	// a freshly minted id has never been read, so there is nothing to invalidate
	if product.ID == "" {
		return c.next.Save(ctx, product)
	}

	if err := c.invalidate(ctx, product.ID); err != nil {
		return domain.Product{}, err
	}

	saved, err := c.next.Save(ctx, product)
	if err != nil {
		return saved, err
	}

	if err := c.invalidate(ctx, saved.ID); err != nil {
		return domain.Product{}, err
	}
	return saved, nil
}

func (c *CachedProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	return c.next.FindAll(ctx)
}

func (c *CachedProductStore) DeleteByID(ctx context.Context, id string) error {
	if err := c.invalidate(ctx, id); err != nil {
		return err
	}

	if err := c.next.DeleteByID(ctx, id); err != nil {
		return err
	}

	return c.invalidate(ctx, id)
}

func (c *CachedProductStore) invalidate(ctx context.Context, id string) error {
	if err := c.client.Set(ctx, cacheKey(id), tombstone, tombstoneTTL).Err(); err != nil {
		c.logger.Error("Cache invalidation failed", zap.String("product_id", id), zap.Error(err))
		return fmt.Errorf("%w: failed to invalidate cached product %s: %w", domain.ErrPersistence, id, err)
	}
	return nil
}
