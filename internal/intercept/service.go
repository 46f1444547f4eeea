package intercept

import (
	"context"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/service"
)

const serviceBoundary = "ProductService"

type stocked struct {
	product domain.Product
	outcome domain.Outcome
}

type loggingService struct {
	next service.Inventory
	i    *interceptor
}

// Service wraps the business orchestrator with the interceptor logger.
func Service(next service.Inventory, logger *zap.Logger) service.Inventory {
	return &loggingService{next: next, i: newInterceptor(logger)}
}

func (s *loggingService) Stock(ctx context.Context, product domain.Product) (domain.Product, domain.Outcome, error) {
	r, err := call(ctx, s.i, serviceBoundary, "Stock",
		func(r stocked) (bool, string) { return outcome(r.outcome) },
		func(ctx context.Context) (stocked, error) {
			saved, o, err := s.next.Stock(ctx, product)
			return stocked{product: saved, outcome: o}, err
		},
		zap.String("name", product.Name))
	return r.product, r.outcome, err
}

func (s *loggingService) RetrieveOne(ctx context.Context, id string) (domain.Retrieval, error) {
	return call(ctx, s.i, serviceBoundary, "RetrieveOne",
		func(r domain.Retrieval) (bool, string) { return r.IsFound(), "absent result" },
		func(ctx context.Context) (domain.Retrieval, error) {
			return s.next.RetrieveOne(ctx, id)
		},
		zap.String("product_id", id))
}

func (s *loggingService) RetrieveAll(ctx context.Context) ([]domain.Product, error) {
	return call(ctx, s.i, serviceBoundary, "RetrieveAll",
		nonEmpty[domain.Product],
		s.next.RetrieveAll)
}

func (s *loggingService) Correct(ctx context.Context, product domain.Product) (domain.Outcome, error) {
	return call(ctx, s.i, serviceBoundary, "Correct",
		outcome,
		func(ctx context.Context) (domain.Outcome, error) {
			return s.next.Correct(ctx, product)
		},
		zap.String("product_id", product.ID))
}

func (s *loggingService) Unstock(ctx context.Context, id string) (domain.Outcome, error) {
	return call(ctx, s.i, serviceBoundary, "Unstock",
		outcome,
		func(ctx context.Context) (domain.Outcome, error) {
			return s.next.Unstock(ctx, id)
		},
		zap.String("product_id", id))
}
