package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

// MemoryProductStore is an in-memory ProductStore. FindAll returns products in
// insertion order.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

var _ domain.ProductStore = (*MemoryProductStore)(nil)

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[string]domain.Product),
	}
}

func (r *MemoryProductStore) FindByID(ctx context.Context, id string) (domain.Product, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	return product, ok, nil
}

func (r *MemoryProductStore) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = product
	return product, nil
}

func (r *MemoryProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

func (r *MemoryProductStore) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return nil
	}
	delete(r.products, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
