package usecase

import (
	"context"

	"vmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase exposes order history to customers and status management to the
// admin back-office.
type OrderUsecase interface {
	// GetUserOrders retrieves the user's orders, newest first.
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder retrieves one order by reference. Non-admin callers only see
	// their own orders.
	GetOrder(ctx context.Context, userID uuid.UUID, isAdmin bool, reference string) (*entity.Order, error)

	// ListAllOrders retrieves every order for the back-office, newest first.
	ListAllOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateAdminStatus moves an order along the back-office workflow. The
	// paired customer-facing status follows automatically, and the customer is
	// notified when a push token is registered.
	UpdateAdminStatus(ctx context.Context, reference string, status entity.AdminStatus) (*entity.Order, error)

	// GenerateOrderQR renders a PNG QR code of the order's maps link so the
	// reference can be shared with the delivery contact.
	GenerateOrderQR(ctx context.Context, userID uuid.UUID, isAdmin bool, reference string) ([]byte, error)
}
