package impl

import (
	"context"
	"strings"
	"testing"

	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/errors"
	"vmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminCatalogService(products *mockProductRepository, images *mockImageStorage) usecase.AdminCatalogUsecase {
	return NewAdminCatalogService(AdminCatalogServiceParams{
		Products: products,
		Images:   images,
		Logger:   newDiscardLogger(),
	})
}

func TestAdminCatalogService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	input := func() *usecase.CreateProductInput {
		return &usecase.CreateProductInput{
			Name:     "Tomates",
			Price:    500,
			Stock:    10,
			Category: "Légumes",
			Image:    &usecase.ImageUpload{Filename: "tomates.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpeg")},
		}
	}

	t.Run("uploads the image then persists the product", func(t *testing.T) {
		products := new(mockProductRepository)
		images := new(mockImageStorage)
		images.On("Upload", ctx, "tomates.jpg", "image/jpeg", mock.Anything).Return("https://img/tomates.jpg", nil)
		products.On("CreateProduct", ctx, mock.MatchedBy(func(p *entity.Product) bool {
			return p.Name == "Tomates" && p.Active && p.ImageURL == "https://img/tomates.jpg"
		})).Return(nil)

		product, err := newAdminCatalogService(products, images).CreateProduct(ctx, input())

		require.NoError(t, err)
		assert.True(t, product.Active)
		products.AssertExpectations(t)
		images.AssertExpectations(t)
	})

	t.Run("deletes the uploaded image when the insert fails", func(t *testing.T) {
		products := new(mockProductRepository)
		images := new(mockImageStorage)
		images.On("Upload", ctx, "tomates.jpg", "image/jpeg", mock.Anything).Return("https://img/tomates.jpg", nil)
		products.On("CreateProduct", ctx, mock.Anything).Return(errors.New("insert failed"))
		images.On("Delete", ctx, "https://img/tomates.jpg").Return(nil)

		_, err := newAdminCatalogService(products, images).CreateProduct(ctx, input())

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrProductCreationFailed.ErrorCode(), appErr.ErrorCode())
		images.AssertExpectations(t)
	})
}

func TestAdminCatalogService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	stored := func() *entity.Product {
		return &entity.Product{ID: productID, Name: "Tomates", Price: 500, Stock: 10, Active: true, ImageURL: "https://img/old.jpg"}
	}

	t.Run("keeps the current image when none is uploaded", func(t *testing.T) {
		products := new(mockProductRepository)
		images := new(mockImageStorage)
		products.On("FindProductByID", ctx, productID).Return(stored(), nil)
		products.On("UpdateProduct", ctx, mock.MatchedBy(func(p *entity.Product) bool {
			return p.Price == 600.0 && p.ImageURL == "https://img/old.jpg"
		})).Return(nil)

		product, err := newAdminCatalogService(products, images).UpdateProduct(ctx, productID, &usecase.UpdateProductInput{
			Name: "Tomates", Price: 600, Stock: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, 600.0, product.Price)
		images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("replaces the stored image when a new one is uploaded", func(t *testing.T) {
		products := new(mockProductRepository)
		images := new(mockImageStorage)
		products.On("FindProductByID", ctx, productID).Return(stored(), nil)
		images.On("Upload", ctx, "new.jpg", "image/jpeg", mock.Anything).Return("https://img/new.jpg", nil)
		images.On("Delete", ctx, "https://img/old.jpg").Return(nil)
		products.On("UpdateProduct", ctx, mock.MatchedBy(func(p *entity.Product) bool {
			return p.ImageURL == "https://img/new.jpg"
		})).Return(nil)

		_, err := newAdminCatalogService(products, images).UpdateProduct(ctx, productID, &usecase.UpdateProductInput{
			Name: "Tomates", Price: 500, Stock: 10,
			Image: &usecase.ImageUpload{Filename: "new.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpeg")},
		})

		require.NoError(t, err)
		images.AssertExpectations(t)
	})
}

func TestAdminCatalogService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("removes the image before the row", func(t *testing.T) {
		products := new(mockProductRepository)
		images := new(mockImageStorage)
		products.On("FindProductByID", ctx, productID).Return(&entity.Product{ID: productID, ImageURL: "https://img/old.jpg"}, nil)
		images.On("Delete", ctx, "https://img/old.jpg").Return(nil)
		products.On("DeleteProduct", ctx, productID).Return(nil)

		err := newAdminCatalogService(products, images).DeleteProduct(ctx, productID)

		require.NoError(t, err)
		images.AssertExpectations(t)
		products.AssertExpectations(t)
	})

	t.Run("a failed image delete does not block the row delete", func(t *testing.T) {
		products := new(mockProductRepository)
		images := new(mockImageStorage)
		products.On("FindProductByID", ctx, productID).Return(&entity.Product{ID: productID, ImageURL: "https://img/old.jpg"}, nil)
		images.On("Delete", ctx, "https://img/old.jpg").Return(errors.New("object store down"))
		products.On("DeleteProduct", ctx, productID).Return(nil)

		err := newAdminCatalogService(products, images).DeleteProduct(ctx, productID)

		require.NoError(t, err)
	})
}

func TestAdminCatalogService_SetProductActive(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	products := new(mockProductRepository)
	images := new(mockImageStorage)
	products.On("SetProductActive", ctx, productID, false).Return(nil)

	err := newAdminCatalogService(products, images).SetProductActive(ctx, productID, false)

	require.NoError(t, err)
	products.AssertExpectations(t)
}
