package repository

import (
	"context"

	"vmarket/internal/domain/entity"
	"vmarket/internal/errors"
)

// ErrAddressNotFound is returned when the directory has no entry for a commune.
var ErrAddressNotFound = errors.New("address not found for commune")

// AddressRepository is the read-only directory mapping communes to pickup
// addresses. A missing entry never blocks checkout.
type AddressRepository interface {
	// FindAddressByCommune retrieves the address registered for a commune.
	FindAddressByCommune(ctx context.Context, commune string) (*entity.LocalAddress, error)
}
