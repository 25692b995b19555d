package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MinLineKg is the smallest purchasable quantity. The storefront steps
// quantities in increments of 0.1 kg.
const MinLineKg = 0.1

// CartLine is one (user, product) quantity entry in the cart. UnitPrice is the
// product price cached when the line was last displayed; it is compared against
// the live catalog price on every read.
type CartLine struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ProductID  uuid.UUID `json:"product_id"`
	QuantityKg float64   `json:"quantity_kg"`
	UnitPrice  float64   `json:"unit_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RoundQuantity snaps a quantity to the 0.1 kg granularity.
func RoundQuantity(kg float64) float64 {
	return math.Round(kg*10) / 10
}

// ReconciledLine is a cart line joined with the live product record and
// annotated with the discrepancies found during reconciliation.
type ReconciledLine struct {
	LineID     uuid.UUID `json:"line_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"image_url"`
	QuantityKg float64   `json:"quantity_kg"`
	UnitPrice  float64   `json:"unit_price"` // Live catalog price; totals always use this.

	// PriceChanged is set when the live price differs from the price cached on
	// the line. PreviousPrice then carries the stale value for display.
	PriceChanged  bool    `json:"price_changed"`
	PreviousPrice float64 `json:"previous_price,omitempty"`

	// StockShrunk is set when live stock no longer covers the line quantity.
	// The line is not clamped; checkout rejects it instead.
	StockShrunk bool    `json:"stock_shrunk"`
	StockKg     float64 `json:"stock_kg"`
	LowStock    bool    `json:"low_stock"`
}

// Subtotal returns quantity times the live unit price, unrounded.
func (l *ReconciledLine) Subtotal() float64 {
	return l.QuantityKg * l.UnitPrice
}

// ReconciledCart is the result of reconciling a user's cart against the live
// catalog. RemovedCount reports how many lines referenced products that became
// inactive and were dropped, so the UI can notify the user once per batch.
type ReconciledCart struct {
	Lines        []*ReconciledLine `json:"lines"`
	RemovedCount int               `json:"removed_count"`
}

// IsEmpty reports whether no purchasable lines survived reconciliation.
func (c *ReconciledCart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total sums quantity times live unit price over all lines. The value stays
// fractional; rounding to whole F CFA happens only at presentation time.
func (c *ReconciledCart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Subtotal()
	}

	return total
}

// RoundedTotal returns the presentation total in whole F CFA.
func (c *ReconciledCart) RoundedTotal() int64 {
	return int64(math.Round(c.Total()))
}

// HasStockShortfall reports whether any line exceeds the live stock.
func (c *ReconciledCart) HasStockShortfall() bool {
	for _, line := range c.Lines {
		if line.StockShrunk {
			return true
		}
	}

	return false
}
