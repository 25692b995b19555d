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

// customerRepository implements the repository.CustomerRepository interface.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

// FindProfileByID retrieves a customer's profile.
func (repo *customerRepository) FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.CustomerProfile, error) {
	var profileM model.CustomerProfileModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer profile")
	}

	return toCustomerDomain(&profileM), nil
}

// UpsertProfile creates or overwrites a customer's profile. The primary key is
// the auth provider's user id, so the conflict target is the id itself.
func (repo *customerRepository) UpsertProfile(ctx context.Context, profile *entity.CustomerProfile) error {
	profileM := fromCustomerDomain(profile)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "commune", "fcm_token", "updated_at"}),
		}).
		Create(profileM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required profile information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert customer profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// toCustomerDomain converts a GORM CustomerProfileModel to a domain CustomerProfile.
func toCustomerDomain(data *model.CustomerProfileModel) *entity.CustomerProfile {
	if data == nil {
		return nil
	}

	return &entity.CustomerProfile{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		Commune:   data.Commune,
		FCMToken:  data.FCMToken,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCustomerDomain converts a domain CustomerProfile to a GORM CustomerProfileModel.
func fromCustomerDomain(data *entity.CustomerProfile) *model.CustomerProfileModel {
	if data == nil {
		return nil
	}

	return &model.CustomerProfileModel{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		Commune:   data.Commune,
		FCMToken:  data.FCMToken,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
