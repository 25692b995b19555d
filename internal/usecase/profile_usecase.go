package usecase

import (
	"context"

	"vmarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileInput holds the contact details a customer may edit.
type ProfileInput struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Commune  string `json:"commune" validate:"required"`
	FCMToken string `json:"fcm_token"`
}

// ProfileUsecase manages the contact details snapshotted into orders.
type ProfileUsecase interface {
	// GetProfile retrieves the user's profile, falling back to placeholder
	// values when none is stored yet.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.CustomerProfile, error)

	// SaveProfile creates or overwrites the user's profile.
	SaveProfile(ctx context.Context, userID uuid.UUID, input *ProfileInput) (*entity.CustomerProfile, error)
}
