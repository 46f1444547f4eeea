package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
	"github.com/cloud-wave-best-zizon/product-inventory/pkg/config"
)

// NewStore builds the ProductStore selected by cfg.StoreKind, wrapped in the Redis
// cache when REDIS_ADDR is set. The returned close func releases driver resources.
func NewStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.ProductStore, func(context.Context) error, error) {
	var (
		store   domain.ProductStore
		closers []func(context.Context) error
	)

	switch cfg.StoreKind {
	case config.StoreDynamoDB:
		client, err := NewDynamoDBClient(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
		}
		store = NewDynamoProductStore(client, cfg.ProductTableName)
	case config.StoreMongo:
		client, err := NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, client.Disconnect)
		store = NewMongoProductStore(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection))
	case config.StoreMemory:
		store = NewMemoryProductStore()
	default:
		return nil, nil, fmt.Errorf("unknown store kind: %s", cfg.StoreKind)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		closers = append(closers, func(context.Context) error { return client.Close() })
		store = NewCachedProductStore(store, client, cfg.CacheTTL, logger)
		logger.Info("Product cache enabled", zap.String("redis_addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	logger.Info("Product store ready", zap.String("kind", cfg.StoreKind))

	closeAll := func(ctx context.Context) error {
		var firstErr error
		for _, closeFn := range closers {
			if err := closeFn(ctx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
	return store, closeAll, nil
}
