package entity

import (
	"time"

	"github.com/google/uuid"
)

// Fallback profile values used when a customer has no stored profile. They
// mirror the storefront's metadata fallback.
const (
	DefaultCustomerName    = "Client"
	DefaultCustomerCommune = "Non définie"
)

// CustomerProfile carries the contact details snapshotted into each order.
// Identity itself lives with the external auth provider; this record only
// holds what checkout and notifications need.
type CustomerProfile struct {
	ID       uuid.UUID `json:"id"` // Matches the auth provider's user id.
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Commune  string    `json:"commune"`
	FCMToken string    `json:"-"` // Optional push token for order status notifications.

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FallbackProfile returns the placeholder profile used when none is stored.
func FallbackProfile(userID uuid.UUID) *CustomerProfile {
	return &CustomerProfile{
		ID:      userID,
		Name:    DefaultCustomerName,
		Commune: DefaultCustomerCommune,
	}
}
