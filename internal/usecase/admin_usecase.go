package usecase

import (
	"context"
	"io"

	"vmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ImageUpload carries an uploaded product image towards the object store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateProductInput holds every field of a new product. Creation and update
// are distinct operations with distinct inputs; there is no mode flag.
type CreateProductInput struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Stock       float64 `validate:"gte=0"`
	Category    string
	Description string
	Image       *ImageUpload `validate:"required"`
}

// UpdateProductInput holds the mutable fields of an existing product. A nil
// Image keeps the current one.
type UpdateProductInput struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Stock       float64 `validate:"gte=0"`
	Category    string
	Description string
	Image       *ImageUpload
}

// AdminCatalogUsecase is the back-office side of product management. The cart
// and checkout engine never calls any of this.
type AdminCatalogUsecase interface {
	// ListProducts retrieves every product, active or not, newest first.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// SearchProducts retrieves products matching the query, active or not.
	SearchProducts(ctx context.Context, query string) ([]*entity.Product, error)

	// CreateProduct uploads the image to the object store and persists the
	// product with the resulting public URL.
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)

	// UpdateProduct overwrites the product's fields; when a new image is
	// provided the old one is replaced in the object store.
	UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// SetProductActive toggles the soft-removal flag.
	SetProductActive(ctx context.Context, id uuid.UUID, active bool) error

	// DeleteProduct removes the product and its stored image permanently.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
