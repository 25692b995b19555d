package impl

import (
	"context"
	"log/slog"
	"time"

	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/domain/service"
	"vmarket/internal/errors"
	"vmarket/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type adminCatalogService struct {
	products repository.ProductRepository
	images   service.ImageStorage
	logger   *slog.Logger
}

// AdminCatalogServiceParams holds dependencies for AdminCatalogService,
// injected by Fx.
type AdminCatalogServiceParams struct {
	fx.In

	Products repository.ProductRepository
	Images   service.ImageStorage
	Logger   *slog.Logger
}

// NewAdminCatalogService creates a new admin catalog service instance.
func NewAdminCatalogService(params AdminCatalogServiceParams) usecase.AdminCatalogUsecase {
	return &adminCatalogService{
		products: params.Products,
		images:   params.Images,
		logger:   params.Logger,
	}
}

func (s *adminCatalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.products.FindAllProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (s *adminCatalogService) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	products, err := s.products.SearchActiveProducts(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return products, nil
}

func (s *adminCatalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	imageURL, err := s.images.Upload(ctx, input.Image.Filename, input.Image.ContentType, input.Image.Body)
	if err != nil {
		return nil, domainerrors.ErrProductCreationFailed.WithDetails(err.Error())
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Price:       input.Price,
		Stock:       input.Stock,
		Active:      true,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.CreateProduct(ctx, product); err != nil {
		// Avoid orphaned objects when the row never lands.
		if delErr := s.images.Delete(ctx, imageURL); delErr != nil {
			s.logger.Warn("failed to delete image after create failure",
				slog.String("url", imageURL),
				slog.Any("error", delErr),
			)
		}

		return nil, domainerrors.ErrProductCreationFailed.WithDetails(err.Error())
	}

	return product, nil
}

func (s *adminCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Image != nil {
		imageURL, err := s.images.Upload(ctx, input.Image.Filename, input.Image.ContentType, input.Image.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to upload product image")
		}
		if product.ImageURL != "" {
			if delErr := s.images.Delete(ctx, product.ImageURL); delErr != nil {
				s.logger.Warn("failed to delete replaced product image",
					slog.String("url", product.ImageURL),
					slog.Any("error", delErr),
				)
			}
		}
		product.ImageURL = imageURL
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Stock = input.Stock
	product.Category = input.Category
	product.Description = input.Description
	product.UpdatedAt = time.Now()

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

func (s *adminCatalogService) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.products.SetProductActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to toggle product")
	}

	return nil
}

func (s *adminCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return err
	}

	// Image first, row second, mirroring the back-office flow. A row whose
	// image is already gone beats an orphaned object nobody can reach.
	if product.ImageURL != "" {
		if err := s.images.Delete(ctx, product.ImageURL); err != nil {
			s.logger.Warn("failed to delete product image",
				slog.String("url", product.ImageURL),
				slog.Any("error", err),
			)
		}
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

func (s *adminCatalogService) loadProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.products.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}
