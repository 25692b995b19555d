package impl

import (
	"context"
	"log/slog"
	"time"

	"vmarket/internal/domain/entity"
	"vmarket/internal/domain/repository"
	"vmarket/internal/errors"
	"vmarket/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type profileService struct {
	customers repository.CustomerRepository
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	Customers repository.CustomerRepository
	Logger    *slog.Logger
}

// NewProfileService creates a new profile service instance.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		customers: params.Customers,
		logger:    params.Logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.CustomerProfile, error) {
	profile, err := s.customers.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return entity.FallbackProfile(userID), nil
		}

		return nil, errors.Wrap(err, "failed to load customer profile")
	}

	return profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, userID uuid.UUID, input *usecase.ProfileInput) (*entity.CustomerProfile, error) {
	now := time.Now()
	profile := &entity.CustomerProfile{
		ID:        userID,
		Name:      input.Name,
		Phone:     input.Phone,
		Commune:   input.Commune,
		FCMToken:  input.FCMToken,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := s.customers.FindProfileByID(ctx, userID); err == nil {
		profile.CreatedAt = existing.CreatedAt
		if input.FCMToken == "" {
			// A save from a device without push support must not drop the
			// token registered elsewhere.
			profile.FCMToken = existing.FCMToken
		}
	}

	if err := s.customers.UpsertProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to save customer profile")
	}

	return profile, nil
}
