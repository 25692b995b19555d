package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vmarket/config"
	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/errors"
	"vmarket/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type cartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	config   *config.Config
	logger   *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Products repository.ProductRepository
	Carts    repository.CartRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewCartService creates a new cart service instance.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		products: params.Products,
		carts:    params.Carts,
		config:   params.Config,
		logger:   params.Logger,
	}
}

// AddToCart merges the requested quantity into the user's line for the
// product, creating the line on first add. The merged quantity is checked
// against live stock; an overflow rejects the add in full and leaves any
// existing line untouched.
func (s *cartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, requestedKg float64) (*usecase.AddResult, error) {
	requestedKg = entity.RoundQuantity(requestedKg)
	if requestedKg < entity.MinLineKg {
		return nil, domainerrors.ErrBelowMinimum
	}

	product, err := s.loadPurchasable(ctx, productID)
	if err != nil {
		return nil, err
	}

	mergedKg := requestedKg
	merged := false

	existing, err := s.carts.FindLineByUserAndProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, repository.ErrCartLineNotFound) {
		return nil, errors.Wrap(err, "failed to find cart line")
	}
	if existing != nil {
		mergedKg = entity.RoundQuantity(existing.QuantityKg + requestedKg)
		merged = true
	}

	if mergedKg <= 0 {
		return nil, domainerrors.ErrBelowMinimum
	}
	if mergedKg > product.Stock {
		return nil, domainerrors.ErrStockExceeded.WithDetails(
			fmt.Sprintf("demande %.1f kg, stock %.1f kg", mergedKg, product.Stock),
		)
	}

	line := &entity.CartLine{
		UserID:     userID,
		ProductID:  productID,
		QuantityKg: mergedKg,
		UnitPrice:  product.Price,
	}
	if existing != nil {
		line.ID = existing.ID
		line.CreatedAt = existing.CreatedAt
	}

	if err := s.carts.UpsertLine(ctx, line); err != nil {
		return nil, errors.Wrap(err, "failed to upsert cart line")
	}

	return &usecase.AddResult{LineKg: mergedKg, Merged: merged}, nil
}

// SetQuantity overwrites the line quantity. A non-positive quantity removes
// the line, mirroring the storefront's explicit removal semantics.
func (s *cartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, newKg float64) error {
	newKg = entity.RoundQuantity(newKg)
	if newKg <= 0 {
		return s.Remove(ctx, userID, productID)
	}
	if newKg < entity.MinLineKg {
		return domainerrors.ErrBelowMinimum
	}

	product, err := s.loadPurchasable(ctx, productID)
	if err != nil {
		return err
	}
	if newKg > product.Stock {
		return domainerrors.ErrStockExceeded.WithDetails(
			fmt.Sprintf("demande %.1f kg, stock %.1f kg", newKg, product.Stock),
		)
	}

	existing, err := s.carts.FindLineByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return domainerrors.ErrCartLineNotFound
		}

		return errors.Wrap(err, "failed to find cart line")
	}

	existing.QuantityKg = newKg
	existing.UnitPrice = product.Price
	existing.UpdatedAt = time.Now()

	if err := s.carts.UpsertLine(ctx, existing); err != nil {
		return errors.Wrap(err, "failed to update cart line")
	}

	return nil
}

// Remove deletes the user's line for the product. Absent lines are ignored.
func (s *cartService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.carts.DeleteLine(ctx, userID, productID); err != nil {
		return errors.Wrap(err, "failed to delete cart line")
	}

	return nil
}

// Clear deletes every line of the user's cart.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.carts.DeleteLinesByUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// GetCart lists the user's lines in creation order and reconciles them against
// the live catalog.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.ReconciledCart, error) {
	lines, err := s.carts.FindLinesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	rec := newReconciler(s.products, s.carts, s.config.Market.LowStockThresholdKg, s.logger)

	return rec.reconcile(ctx, lines)
}

// loadPurchasable fetches a product and rejects inactive or unknown ones with
// the matching application error.
func (s *cartService) loadPurchasable(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := s.products.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product")
	}
	if !product.Active {
		return nil, domainerrors.ErrProductUnavailable
	}

	return product, nil
}
