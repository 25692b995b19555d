package postgres

import (
	"context"
	"encoding/json"

	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder persists a new order with its line-item snapshot.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM, err := fromOrderDomain(order)
	if err != nil {
		return errors.Wrap(err, "failed to encode order items")
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReference
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrCommitFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// FindOrderByReference retrieves an order by its human-shareable reference.
func (repo *orderRepository) FindOrderByReference(ctx context.Context, reference string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by reference")
	}

	return toOrderDomain(&orderM)
}

// FindOrdersByUser retrieves all orders of a user, newest first.
func (repo *orderRepository) FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return toOrderDomainList(orderModels)
}

// FindAllOrders retrieves every order, newest first. Admin back-office only.
func (repo *orderRepository) FindAllOrders(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders")
	}

	return toOrderDomainList(orderModels)
}

// UpdateOrderStatus writes new admin and customer statuses for an order.
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, adminStatus entity.AdminStatus, customerStatus entity.CustomerStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"admin_status":    string(adminStatus),
			"customer_status": string(customerStatus),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// SetPenaltyActive flags or clears the cancellation penalty on an order.
func (repo *orderRepository) SetPenaltyActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("penalty_active", active)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set order penalty flag")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) (*entity.Order, error) {
	if data == nil {
		return nil, nil
	}

	var items []entity.OrderItem
	if err := json.Unmarshal(data.Items, &items); err != nil {
		return nil, errors.Wrap(err, "failed to decode order items")
	}

	return &entity.Order{
		ID:              data.ID,
		Reference:       data.Reference,
		UserID:          data.UserID,
		CustomerName:    data.CustomerName,
		CustomerPhone:   data.CustomerPhone,
		CustomerCommune: data.CustomerCommune,
		Items:           items,
		Total:           data.Total,
		AdminStatus:     entity.AdminStatus(data.AdminStatus),
		CustomerStatus:  entity.CustomerStatus(data.CustomerStatus),
		PenaltyActive:   data.PenaltyActive,
		CreatedAt:       data.CreatedAt,
	}, nil
}

func toOrderDomainList(data []*model.OrderModel) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0, len(data))
	for _, orderM := range data {
		order, err := toOrderDomain(orderM)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) (*model.OrderModel, error) {
	if data == nil {
		return nil, nil
	}

	items, err := json.Marshal(data.Items)
	if err != nil {
		return nil, err
	}

	return &model.OrderModel{
		ID:              data.ID,
		Reference:       data.Reference,
		UserID:          data.UserID,
		CustomerName:    data.CustomerName,
		CustomerPhone:   data.CustomerPhone,
		CustomerCommune: data.CustomerCommune,
		Items:           items,
		Total:           data.Total,
		AdminStatus:     string(data.AdminStatus),
		CustomerStatus:  string(data.CustomerStatus),
		PenaltyActive:   data.PenaltyActive,
		CreatedAt:       data.CreatedAt,
	}, nil
}
