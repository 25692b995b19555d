package impl

import (
	"context"
	"log/slog"

	"vmarket/config"
	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/errors"
	"vmarket/internal/usecase"
	"vmarket/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type catalogService struct {
	products repository.ProductRepository
	config   *config.Config
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Products repository.ProductRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewCatalogService creates a new catalog service instance.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		products: params.Products,
		config:   params.Config,
		logger:   params.Logger,
	}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*usecase.CatalogView, error) {
	products, err := s.products.FindActiveProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active products")
	}

	return s.views(products), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*usecase.CatalogView, error) {
	product, err := s.products.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}
	if !product.Active {
		return nil, domainerrors.ErrProductNotFound
	}

	return s.view(product), nil
}

func (s *catalogService) SearchProducts(ctx context.Context, query string) ([]*usecase.CatalogView, error) {
	products, err := s.products.SearchActiveProducts(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return s.views(products), nil
}

func (s *catalogService) view(product *entity.Product) *usecase.CatalogView {
	return &usecase.CatalogView{
		Product:      product,
		LowStock:     product.LowStock(s.config.Market.LowStockThresholdKg),
		DisplayPrice: util.FormatAmount(product.Price) + "/kg",
	}
}

func (s *catalogService) views(products []*entity.Product) []*usecase.CatalogView {
	views := make([]*usecase.CatalogView, 0, len(products))
	for _, product := range products {
		views = append(views, s.view(product))
	}

	return views
}
