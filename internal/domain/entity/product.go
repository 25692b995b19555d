// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product represents one catalog entry of the market.
// Prices are in F CFA per kilogram, stock in kilograms.
type Product struct {
	ID          uuid.UUID `json:"id"`          // The unique identifier of the product.
	Name        string    `json:"name"`        // Display name, e.g. "Tomates".
	Price       float64   `json:"price"`       // Unit price in F CFA per kg, always positive.
	Stock       float64   `json:"stock"`       // Remaining stock in kg, never negative.
	Active      bool      `json:"active"`      // Inactive products are neither browsable nor purchasable.
	Category    string    `json:"category"`    // Free-form category label.
	Description string    `json:"description"` // Optional description shown on the detail view.
	ImageURL    string    `json:"image_url"`   // Public URL of the stored product image.
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Purchasable reports whether the product can currently be added to a cart.
func (p *Product) Purchasable() bool {
	return p.Active && p.Stock > 0
}

// LowStock reports whether the remaining stock is below the given threshold,
// used by the storefront to highlight nearly sold-out products.
func (p *Product) LowStock(thresholdKg float64) bool {
	return p.Stock < thresholdKg
}
