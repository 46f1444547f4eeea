package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

// Inventory is the business API for products.
//
// Not-found is reported as data (Absent, NotFound); a non-nil error is always an
// internal failure.
type Inventory interface {
	// Stock adds a new product. Use Correct to adjust the quantity of an existing one.
	Stock(ctx context.Context, product domain.Product) (domain.Product, domain.Outcome, error)
	RetrieveOne(ctx context.Context, id string) (domain.Retrieval, error)
	RetrieveAll(ctx context.Context) ([]domain.Product, error)
	// Correct replaces every field of the product with the given ID.
	Correct(ctx context.Context, product domain.Product) (domain.Outcome, error)
	Unstock(ctx context.Context, id string) (domain.Outcome, error)
}

type ProductService struct {
	productRepo domain.ProductStore
	logger      *zap.Logger
}

var _ Inventory = (*ProductService)(nil)

func NewProductService(productRepo domain.ProductStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *ProductService) Stock(ctx context.Context, product domain.Product) (domain.Product, domain.Outcome, error) {
	// identity is always assigned by the store
	product.ID = ""

	saved, err := s.productRepo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, 0, fmt.Errorf("stock product: %w", err)
	}

	s.logger.Info("Product stocked",
		zap.String("product_id", saved.ID),
		zap.Int("quantity", saved.Quantity))

	return saved, domain.Stocked, nil
}

func (s *ProductService) RetrieveOne(ctx context.Context, id string) (domain.Retrieval, error) {
	product, found, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Absent(), fmt.Errorf("retrieve product %s: %w", id, err)
	}
	if !found {
		return domain.Absent(), nil
	}
	return domain.Found(product), nil
}

func (s *ProductService) RetrieveAll(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieve products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Correct, like Unstock, checks existence and then writes in two separate store
// calls; concurrent requests on the same ID are not serialized.
func (s *ProductService) Correct(ctx context.Context, product domain.Product) (domain.Outcome, error) {
	_, found, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return 0, fmt.Errorf("correct product %s: %w", product.ID, err)
	}
	if !found {
		return domain.NotFound, nil
	}

	if _, err := s.productRepo.Save(ctx, product); err != nil {
		return 0, fmt.Errorf("correct product %s: %w", product.ID, err)
	}
	return domain.Corrected, nil
}

func (s *ProductService) Unstock(ctx context.Context, id string) (domain.Outcome, error) {
	_, found, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("unstock product %s: %w", id, err)
	}
	if !found {
		return domain.NotFound, nil
	}

	if err := s.productRepo.DeleteByID(ctx, id); err != nil {
		return 0, fmt.Errorf("unstock product %s: %w", id, err)
	}

	s.logger.Info("Product unstocked", zap.String("product_id", id))
	return domain.Unstocked, nil
}
