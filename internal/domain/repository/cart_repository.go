package repository

import (
	"context"

	"vmarket/internal/domain/entity"
	"vmarket/internal/errors"

	"github.com/google/uuid"
)

// ErrCartLineNotFound is returned when a cart line is not found.
var ErrCartLineNotFound = errors.New("cart line not found")

// CartRepository defines the interface for cart persistence. Lines are keyed
// by the (user, product) composite; each user owns their lines exclusively.
type CartRepository interface {
	// UpsertLine creates the line or overwrites quantity and cached price of
	// an existing (user, product) line.
	UpsertLine(ctx context.Context, line *entity.CartLine) error

	// FindLineByUserAndProduct retrieves a single line by its composite key.
	FindLineByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartLine, error)

	// FindLinesByUser retrieves all lines of a user in creation order.
	FindLinesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error)

	// UpdateLinePrice advances the cached unit price of a line after a price
	// change has been surfaced to the user.
	UpdateLinePrice(ctx context.Context, id uuid.UUID, unitPrice float64) error

	// DeleteLine removes a line by its composite key. Deleting an absent line
	// is not an error.
	DeleteLine(ctx context.Context, userID, productID uuid.UUID) error

	// DeleteLineByID removes a line by its row id. Idempotent.
	DeleteLineByID(ctx context.Context, id uuid.UUID) error

	// DeleteLinesByUser removes every line of a user. Idempotent.
	DeleteLinesByUser(ctx context.Context, userID uuid.UUID) error
}
