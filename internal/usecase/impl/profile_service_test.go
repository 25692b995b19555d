package impl

import (
	"context"
	"testing"

	"vmarket/internal/domain/entity"
	"vmarket/internal/domain/repository"
	"vmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileService(customers *mockCustomerRepository) usecase.ProfileUsecase {
	return NewProfileService(ProfileServiceParams{
		Customers: customers,
		Logger:    newDiscardLogger(),
	})
}

func TestProfileService_GetProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns the stored profile", func(t *testing.T) {
		customers := new(mockCustomerRepository)
		customers.On("FindProfileByID", ctx, userID).Return(&entity.CustomerProfile{ID: userID, Name: "Awa", Commune: "Cocody"}, nil)

		profile, err := newProfileService(customers).GetProfile(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, "Awa", profile.Name)
	})

	t.Run("falls back to placeholders when none is stored", func(t *testing.T) {
		customers := new(mockCustomerRepository)
		customers.On("FindProfileByID", ctx, userID).Return(nil, repository.ErrCustomerNotFound)

		profile, err := newProfileService(customers).GetProfile(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, entity.DefaultCustomerName, profile.Name)
		assert.Equal(t, entity.DefaultCustomerCommune, profile.Commune)
	})
}

func TestProfileService_SaveProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates a profile", func(t *testing.T) {
		customers := new(mockCustomerRepository)
		customers.On("FindProfileByID", ctx, userID).Return(nil, repository.ErrCustomerNotFound)
		customers.On("UpsertProfile", ctx, mock.MatchedBy(func(p *entity.CustomerProfile) bool {
			return p.ID == userID && p.Name == "Awa" && p.Commune == "Cocody"
		})).Return(nil)

		profile, err := newProfileService(customers).SaveProfile(ctx, userID, &usecase.ProfileInput{
			Name: "Awa", Phone: "0512345678", Commune: "Cocody",
		})

		require.NoError(t, err)
		assert.Equal(t, "Awa", profile.Name)
		customers.AssertExpectations(t)
	})

	t.Run("a save without a token keeps the registered one", func(t *testing.T) {
		customers := new(mockCustomerRepository)
		customers.On("FindProfileByID", ctx, userID).Return(&entity.CustomerProfile{ID: userID, Name: "Awa", FCMToken: "tok-1"}, nil)
		customers.On("UpsertProfile", ctx, mock.MatchedBy(func(p *entity.CustomerProfile) bool {
			return p.FCMToken == "tok-1"
		})).Return(nil)

		_, err := newProfileService(customers).SaveProfile(ctx, userID, &usecase.ProfileInput{
			Name: "Awa", Commune: "Cocody",
		})

		require.NoError(t, err)
		customers.AssertExpectations(t)
	})
}
