// Package impl contains the concrete implementations of the use case layer.
package impl

import (
	"context"
	"log/slog"

	"vmarket/internal/domain/entity"
	"vmarket/internal/domain/repository"
	"vmarket/internal/errors"
)

// reconciler re-validates cached cart lines against the live catalog. It runs
// on every cart read and once more inside the commit transaction, so it is
// built over whatever repositories the caller is currently bound to.
type reconciler struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	lowStkKg float64
	logger   *slog.Logger
}

func newReconciler(products repository.ProductRepository, carts repository.CartRepository, lowStockKg float64, logger *slog.Logger) *reconciler {
	return &reconciler{
		products: products,
		carts:    carts,
		lowStkKg: lowStockKg,
		logger:   logger,
	}
}

// reconcile joins each line with its live product. Lines whose product is gone
// or inactive are deleted and counted, so the caller can notify the user once
// per batch. Price and stock discrepancies are flagged, never silently fixed:
// the live price wins for display and totals, a stock shortfall stays on the
// line for checkout to reject.
func (r *reconciler) reconcile(ctx context.Context, lines []*entity.CartLine) (*entity.ReconciledCart, error) {
	cart := &entity.ReconciledCart{Lines: make([]*entity.ReconciledLine, 0, len(lines))}

	for _, line := range lines {
		product, err := r.products.FindProductByID(ctx, line.ProductID)
		if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(err, "failed to load product for cart line")
		}

		if product == nil || !product.Active {
			if err := r.carts.DeleteLineByID(ctx, line.ID); err != nil {
				return nil, errors.Wrap(err, "failed to drop unavailable cart line")
			}
			cart.RemovedCount++
			r.logger.Info("dropped cart line for unavailable product",
				slog.String("lineID", line.ID.String()),
				slog.String("productID", line.ProductID.String()),
			)

			continue
		}

		reconciled := &entity.ReconciledLine{
			LineID:     line.ID,
			ProductID:  product.ID,
			Name:       product.Name,
			ImageURL:   product.ImageURL,
			QuantityKg: line.QuantityKg,
			UnitPrice:  product.Price,
			StockKg:    product.Stock,
			LowStock:   product.LowStock(r.lowStkKg),
		}

		if product.Price != line.UnitPrice {
			reconciled.PriceChanged = true
			reconciled.PreviousPrice = line.UnitPrice

			// Advance the cached price so the change is reported exactly once.
			if err := r.carts.UpdateLinePrice(ctx, line.ID, product.Price); err != nil {
				return nil, errors.Wrap(err, "failed to advance cached line price")
			}
		}

		if product.Stock < line.QuantityKg {
			reconciled.StockShrunk = true
		}

		cart.Lines = append(cart.Lines, reconciled)
	}

	return cart, nil
}
