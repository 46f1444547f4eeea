package domain

import (
	"context"
	"errors"
)

// ErrPersistence marks failures raised by a store driver.
var ErrPersistence = errors.New("persistence failure")

// ProductStore is the persistence port consumed by the inventory service.
//
// Save inserts when the product has no ID (the store assigns one) and replaces the
// stored record otherwise. Writes must be visible to the next FindByID of the same caller.
type ProductStore interface {
	FindByID(ctx context.Context, id string) (Product, bool, error)
	Save(ctx context.Context, product Product) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	DeleteByID(ctx context.Context, id string) error
}
