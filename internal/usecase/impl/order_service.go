package impl

import (
	"context"
	"fmt"
	"log/slog"

	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/domain/service"
	"vmarket/internal/errors"
	"vmarket/internal/usecase"
	"vmarket/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// French notification copy per customer-facing status.
var statusNotificationBody = map[entity.CustomerStatus]string{
	entity.CustomerStatusConfirmed: "Votre commande %s a été confirmée.",
	entity.CustomerStatusDelivered: "Votre commande %s a été livrée. Merci !",
	entity.CustomerStatusCancelled: "Votre commande %s a été annulée.",
}

type orderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	addresses repository.AddressRepository
	notifier  service.NotificationService
	qrcode    service.QRCodeService
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	Orders    repository.OrderRepository
	Customers repository.CustomerRepository
	Addresses repository.AddressRepository
	Notifier  service.NotificationService `optional:"true"`
	QRCode    service.QRCodeService
	Logger    *slog.Logger
}

// NewOrderService creates a new order service instance.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orders:    params.Orders,
		customers: params.Customers,
		addresses: params.Addresses,
		notifier:  params.Notifier,
		qrcode:    params.QRCode,
		logger:    params.Logger,
	}
}

func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := s.orders.FindOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID uuid.UUID, isAdmin bool, reference string) (*entity.Order, error) {
	return s.loadOrder(ctx, userID, isAdmin, reference)
}

func (s *orderService) ListAllOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orders.FindAllOrders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (s *orderService) UpdateAdminStatus(ctx context.Context, reference string, status entity.AdminStatus) (*entity.Order, error) {
	order, err := s.orders.FindOrderByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if !entity.CanTransition(order.AdminStatus, status) {
		return nil, domainerrors.ErrInvalidStatusTransition.WithDetails(
			fmt.Sprintf("%s -> %s", order.AdminStatus, status),
		)
	}

	customerStatus := entity.CustomerStatusOf(status)
	if err := s.orders.UpdateOrderStatus(ctx, order.ID, status, customerStatus); err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}
	order.AdminStatus = status
	order.CustomerStatus = customerStatus

	s.notifyStatusChange(ctx, order)

	return order, nil
}

func (s *orderService) GenerateOrderQR(ctx context.Context, userID uuid.UUID, isAdmin bool, reference string) ([]byte, error) {
	order, err := s.loadOrder(ctx, userID, isAdmin, reference)
	if err != nil {
		return nil, err
	}

	address := ""
	if local, err := s.addresses.FindAddressByCommune(ctx, order.CustomerCommune); err == nil {
		address = local.Address
	}

	png, err := s.qrcode.GenerateOrderQR(util.MapsSearchURL(address, order.CustomerCommune))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order QR code")
	}

	return png, nil
}

// loadOrder fetches an order and enforces that non-admin callers only read
// their own orders. The access error deliberately matches not-found in shape
// so references cannot be probed.
func (s *orderService) loadOrder(ctx context.Context, userID uuid.UUID, isAdmin bool, reference string) (*entity.Order, error) {
	order, err := s.orders.FindOrderByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}
	if !isAdmin && order.UserID != userID {
		return nil, domainerrors.ErrOrderAccessDenied
	}

	return order, nil
}

// notifyStatusChange pushes the status update to the customer's device when a
// token is registered. Failures are logged, never surfaced: the status write
// already happened.
func (s *orderService) notifyStatusChange(ctx context.Context, order *entity.Order) {
	if s.notifier == nil {
		return
	}

	body, ok := statusNotificationBody[order.CustomerStatus]
	if !ok {
		return
	}

	profile, err := s.customers.FindProfileByID(ctx, order.UserID)
	if err != nil || profile.FCMToken == "" {
		return
	}

	data := map[string]string{
		"reference": order.Reference,
		"status":    string(order.CustomerStatus),
	}
	if err := s.notifier.SendSingleNotification(ctx, profile.FCMToken, "Virtual Market", fmt.Sprintf(body, order.Reference), data); err != nil {
		s.logger.Warn("failed to send order status notification",
			slog.String("reference", order.Reference),
			slog.Any("error", err),
		)
	}
}
