package postgres

import (
	"context"

	"vmarket/internal/domain/entity"
	"vmarket/internal/domain/repository"
	"vmarket/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// addressRepository implements the repository.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{
		db: db,
	}
}

// FindAddressByCommune retrieves the address registered for a commune.
func (repo *addressRepository) FindAddressByCommune(ctx context.Context, commune string) (*entity.LocalAddress, error) {
	var addressM model.LocalAddressModel

	if err := repo.db.WithContext(ctx).
		Where("commune = ?", commune).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by commune")
	}

	return &entity.LocalAddress{
		Commune: addressM.Commune,
		Address: addressM.Address,
	}, nil
}
