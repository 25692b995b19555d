package repository

import (
	"context"

	"vmarket/internal/domain/entity"
	"vmarket/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateReference is returned when an order reference collides.
	ErrDuplicateReference = errors.New("order reference already exists")
)

// OrderRepository defines the interface for the append-mostly order sink.
// Orders are immutable after creation except for their status fields.
type OrderRepository interface {
	// CreateOrder persists a new order with its line-item snapshot.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByReference retrieves an order by its human-shareable reference.
	FindOrderByReference(ctx context.Context, reference string) (*entity.Order, error)

	// FindOrdersByUser retrieves all orders of a user, newest first.
	FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindAllOrders retrieves every order, newest first. Admin back-office only.
	FindAllOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateOrderStatus writes new admin and customer statuses for an order.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, adminStatus entity.AdminStatus, customerStatus entity.CustomerStatus) error

	// SetPenaltyActive flags or clears the cancellation penalty on an order.
	SetPenaltyActive(ctx context.Context, id uuid.UUID, active bool) error
}
