package intercept

import (
	"context"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

const storeBoundary = "ProductStore"

type lookup struct {
	product domain.Product
	found   bool
}

type loggingStore struct {
	next domain.ProductStore
	i    *interceptor
}

// Store wraps a persistence port with the interceptor logger.
func Store(next domain.ProductStore, logger *zap.Logger) domain.ProductStore {
	return &loggingStore{next: next, i: newInterceptor(logger)}
}

func (s *loggingStore) FindByID(ctx context.Context, id string) (domain.Product, bool, error) {
	r, err := call(ctx, s.i, storeBoundary, "FindByID",
		func(r lookup) (bool, string) { return r.found, "absent result" },
		func(ctx context.Context) (lookup, error) {
			product, found, err := s.next.FindByID(ctx, id)
			return lookup{product: product, found: found}, err
		},
		zap.String("product_id", id))
	return r.product, r.found, err
}

func (s *loggingStore) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	return call(ctx, s.i, storeBoundary, "Save",
		presentValue[domain.Product],
		func(ctx context.Context) (domain.Product, error) {
			return s.next.Save(ctx, product)
		},
		zap.String("product_id", product.ID))
}

func (s *loggingStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	return call(ctx, s.i, storeBoundary, "FindAll",
		nonEmpty[domain.Product],
		s.next.FindAll)
}

func (s *loggingStore) DeleteByID(ctx context.Context, id string) error {
	_, err := call(ctx, s.i, storeBoundary, "DeleteByID",
		presentValue[struct{}],
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.next.DeleteByID(ctx, id)
		},
		zap.String("product_id", id))
	return err
}

func presentValue[T any](T) (bool, string) {
	return true, ""
}

func nonEmpty[T any](items []T) (bool, string) {
	return len(items) > 0, "empty result"
}

func outcome(o domain.Outcome) (bool, string) {
	return o != domain.NotFound, o.String()
}
