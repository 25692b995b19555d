package usecase

import (
	"context"
	"fmt"

	"vmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// CommitStep names the ordered steps of a checkout commit, for failure
// reporting: no automatic compensation exists outside the transaction, so the
// caller learns exactly which step broke.
type CommitStep string

const (
	StepRecheck     CommitStep = "recheck"
	StepOrderInsert CommitStep = "order_insert"
	StepStockUpdate CommitStep = "stock_update"
	StepCartClear   CommitStep = "cart_clear"
)

// CommitStepError wraps a mid-commit failure with the step that raised it.
type CommitStepError struct {
	Step CommitStep
	Err  error
}

func (e *CommitStepError) Error() string {
	return fmt.Sprintf("checkout commit failed at step %s: %v", e.Step, e.Err)
}

func (e *CommitStepError) Unwrap() error {
	return e.Err
}

// CheckoutReview is the summary presented for confirmation before commit.
type CheckoutReview struct {
	Cart *entity.ReconciledCart `json:"cart"`

	Commune string `json:"commune"`
	// Address is the directory entry for the commune, or the explicit
	// "address undefined" marker. A missing address never blocks checkout.
	Address        string `json:"address"`
	AddressDefined bool   `json:"address_defined"`
	MapsURL        string `json:"maps_url"`

	Total int64 `json:"total"` // Presentation total in whole F CFA.
}

// CheckoutUsecase drives the two-phase checkout workflow: review, then an
// atomic commit of order insert, stock decrements and cart clearing.
type CheckoutUsecase interface {
	// Review validates that the reconciled cart is non-empty and resolves the
	// destination address for the user's commune.
	Review(ctx context.Context, userID uuid.UUID) (*CheckoutReview, error)

	// Commit converts the cart into an order. Inside one transaction it
	// re-reconciles every line against live stock, writes the order snapshot,
	// conditionally decrements each product's stock and clears the cart.
	// Any failure rolls the whole commit back and surfaces the failed step.
	Commit(ctx context.Context, userID uuid.UUID) (*entity.Order, error)
}
