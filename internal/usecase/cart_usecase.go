package usecase

import (
	"context"

	"vmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// AddResult reports the outcome of an add-to-cart call.
type AddResult struct {
	// LineKg is the quantity now on the line, after any merge.
	LineKg float64 `json:"line_kg"`

	// Merged is true when the requested quantity was folded into an existing line.
	Merged bool `json:"merged"`
}

// CartUsecase owns all cart mutations and the reconciled cart read. Every call
// takes the acting user's id explicitly; there is no ambient session state.
type CartUsecase interface {
	// AddToCart creates a line for the product or merges the requested
	// quantity into the existing one. The merge is rejected in full when the
	// resulting quantity would exceed live stock.
	AddToCart(ctx context.Context, userID, productID uuid.UUID, requestedKg float64) (*AddResult, error)

	// SetQuantity overwrites a line's quantity. A non-positive quantity
	// removes the line instead of erroring.
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, newKg float64) error

	// Remove deletes a line. Removing an absent line is not an error.
	Remove(ctx context.Context, userID, productID uuid.UUID) error

	// Clear deletes every line of the user's cart. Idempotent.
	Clear(ctx context.Context, userID uuid.UUID) error

	// GetCart lists the user's lines joined with live catalog data, after
	// reconciliation (inactive products dropped, price/stock flags set).
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.ReconciledCart, error)
}
