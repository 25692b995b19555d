package repository

import (
	"context"

	"vmarket/internal/domain/entity"
	"vmarket/internal/errors"

	"github.com/google/uuid"
)

// ErrCustomerNotFound is returned when no profile is stored for a user.
var ErrCustomerNotFound = errors.New("customer profile not found")

// CustomerRepository stores the contact details snapshotted into orders.
type CustomerRepository interface {
	// FindProfileByID retrieves a customer's profile.
	FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.CustomerProfile, error)

	// UpsertProfile creates or overwrites a customer's profile.
	UpsertProfile(ctx context.Context, profile *entity.CustomerProfile) error
}
