// Package usecase defines the application service interfaces and their DTOs.
package usecase

import (
	"context"

	"vmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogView is a product decorated with the presentation hints the
// storefront renders (low-stock badge, formatted price).
type CatalogView struct {
	Product      *entity.Product `json:"product"`
	LowStock     bool            `json:"low_stock"`
	DisplayPrice string          `json:"display_price"`
}

// CatalogUsecase is the customer-facing, read-only view of the catalog.
// Inactive products are never returned.
type CatalogUsecase interface {
	// ListProducts retrieves all active products, newest first.
	ListProducts(ctx context.Context) ([]*CatalogView, error)

	// GetProduct retrieves one active product for the detail view.
	GetProduct(ctx context.Context, id uuid.UUID) (*CatalogView, error)

	// SearchProducts retrieves active products matching the query.
	SearchProducts(ctx context.Context, query string) ([]*CatalogView, error)
}
