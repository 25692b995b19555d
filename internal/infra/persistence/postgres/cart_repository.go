package postgres

import (
	"context"

	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// UpsertLine creates the line or overwrites quantity and cached price of an
// existing (user, product) line. The conflict target is the unique index on
// the composite key.
func (repo *cartRepository) UpsertLine(ctx context.Context, line *entity.CartLine) error {
	lineM := fromCartLineDomain(line)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity_kg", "unit_price", "updated_at"}),
		}).
		Create(lineM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert cart line")
	}

	line.ID = lineM.ID
	line.CreatedAt = lineM.CreatedAt
	line.UpdatedAt = lineM.UpdatedAt

	return nil
}

// FindLineByUserAndProduct retrieves a single line by its composite key.
func (repo *cartRepository) FindLineByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartLine, error) {
	var lineM model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&lineM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartLineNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart line")
	}

	return toCartLineDomain(&lineM), nil
}

// FindLinesByUser retrieves all lines of a user in creation order, so the
// cart renders in the order items were first added.
func (repo *cartRepository) FindLinesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error) {
	var lineModels []*model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find cart lines by user")
	}

	lines := make([]*entity.CartLine, 0, len(lineModels))
	for _, lineM := range lineModels {
		lines = append(lines, toCartLineDomain(lineM))
	}

	return lines, nil
}

// UpdateLinePrice advances the cached unit price of a line.
func (repo *cartRepository) UpdateLinePrice(ctx context.Context, id uuid.UUID, unitPrice float64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartLineModel{}).
		Where("id = ?", id).
		Update("unit_price", unitPrice)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update cached line price")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartLineNotFound
	}

	return nil
}

// DeleteLine removes a line by its composite key. Deleting an absent line is
// not an error.
func (repo *cartRepository) DeleteLine(ctx context.Context, userID, productID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartLineModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart line")
	}

	return nil
}

// DeleteLineByID removes a line by its row id. Idempotent.
func (repo *cartRepository) DeleteLineByID(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CartLineModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart line by id")
	}

	return nil
}

// DeleteLinesByUser removes every line of a user. Idempotent.
func (repo *cartRepository) DeleteLinesByUser(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLineModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart lines by user")
	}

	return nil
}

// toCartLineDomain converts a GORM CartLineModel to a domain CartLine entity.
func toCartLineDomain(data *model.CartLineModel) *entity.CartLine {
	if data == nil {
		return nil
	}

	return &entity.CartLine{
		ID:         data.ID,
		UserID:     data.UserID,
		ProductID:  data.ProductID,
		QuantityKg: data.QuantityKg,
		UnitPrice:  data.UnitPrice,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromCartLineDomain converts a domain CartLine entity to a GORM CartLineModel.
func fromCartLineDomain(data *entity.CartLine) *model.CartLineModel {
	if data == nil {
		return nil
	}

	return &model.CartLineModel{
		ID:         data.ID,
		UserID:     data.UserID,
		ProductID:  data.ProductID,
		QuantityKg: data.QuantityKg,
		UnitPrice:  data.UnitPrice,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
