// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"vmarket/internal/domain/entity"
	"vmarket/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned by DecrementStock when the remaining
	// stock does not cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateProduct is returned when creating a product that already exists.
	ErrDuplicateProduct = errors.New("product already exists")
)

// ProductRepository defines the interface for catalog database operations.
// The cart/checkout engine only ever reads products and decrements stock;
// every other mutation belongs to the admin back-office.
type ProductRepository interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID retrieves a product by its unique ID, active or not.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindActiveProducts retrieves all active products, newest first.
	FindActiveProducts(ctx context.Context) ([]*entity.Product, error)

	// FindAllProducts retrieves every product regardless of the active flag,
	// newest first. Admin back-office only.
	FindAllProducts(ctx context.Context) ([]*entity.Product, error)

	// SearchActiveProducts retrieves active products whose name, category or
	// description matches the query, newest first.
	SearchActiveProducts(ctx context.Context, query string) ([]*entity.Product, error)

	// UpdateProduct overwrites the mutable fields of an existing product.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// SetProductActive toggles the active flag (soft removal).
	SetProductActive(ctx context.Context, id uuid.UUID, active bool) error

	// DecrementStock atomically subtracts byKg from the product's stock. The
	// decrement only applies when the remaining stock covers it; otherwise
	// ErrInsufficientStock is returned and nothing is written.
	DecrementStock(ctx context.Context, id uuid.UUID, byKg float64) error

	// DeleteProduct removes the product row permanently.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
