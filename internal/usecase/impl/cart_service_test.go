package impl

import (
	"context"
	"testing"

	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartService(products *mockProductRepository, carts *mockCartRepository) usecase.CartUsecase {
	return NewCartService(CartServiceParams{
		Products: products,
		Carts:    carts,
		Config:   newTestConfig(),
		Logger:   newDiscardLogger(),
	})
}

func TestCartService_AddToCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	product := func(stock float64) *entity.Product {
		return &entity.Product{ID: productID, Name: "Tomates", Price: 500, Stock: stock, Active: true}
	}

	t.Run("creates a new line on first add", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		products.On("FindProductByID", ctx, productID).Return(product(10.0), nil)
		carts.On("FindLineByUserAndProduct", ctx, userID, productID).Return(nil, repository.ErrCartLineNotFound)
		carts.On("UpsertLine", ctx, mock.MatchedBy(func(line *entity.CartLine) bool {
			return line.UserID == userID && line.ProductID == productID &&
				line.QuantityKg == 3.0 && line.UnitPrice == 500.0
		})).Return(nil)

		result, err := newCartService(products, carts).AddToCart(ctx, userID, productID, 3.0)

		require.NoError(t, err)
		assert.Equal(t, 3.0, result.LineKg)
		assert.False(t, result.Merged)
		carts.AssertExpectations(t)
	})

	t.Run("merges into the existing line", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		existing := &entity.CartLine{ID: uuid.New(), UserID: userID, ProductID: productID, QuantityKg: 3.0, UnitPrice: 500}
		products.On("FindProductByID", ctx, productID).Return(product(10.0), nil)
		carts.On("FindLineByUserAndProduct", ctx, userID, productID).Return(existing, nil)
		carts.On("UpsertLine", ctx, mock.MatchedBy(func(line *entity.CartLine) bool {
			return line.ID == existing.ID && line.QuantityKg == 7.0
		})).Return(nil)

		result, err := newCartService(products, carts).AddToCart(ctx, userID, productID, 4.0)

		require.NoError(t, err)
		assert.Equal(t, 7.0, result.LineKg)
		assert.True(t, result.Merged)
		carts.AssertExpectations(t)
	})

	t.Run("rejects the merge in full when stock is exceeded", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		existing := &entity.CartLine{ID: uuid.New(), UserID: userID, ProductID: productID, QuantityKg: 7.0, UnitPrice: 500}
		products.On("FindProductByID", ctx, productID).Return(product(10.0), nil)
		carts.On("FindLineByUserAndProduct", ctx, userID, productID).Return(existing, nil)

		_, err := newCartService(products, carts).AddToCart(ctx, userID, productID, 5.0)

		require.Error(t, err)
		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrStockExceeded.ErrorCode(), appErr.ErrorCode())
		// The prior line must stay untouched: no write happened at all.
		carts.AssertNotCalled(t, "UpsertLine", mock.Anything, mock.Anything)
	})

	t.Run("rejects quantities below the minimum", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)

		_, err := newCartService(products, carts).AddToCart(ctx, userID, productID, 0.04)

		assert.ErrorIs(t, err, domainerrors.ErrBelowMinimum)
		products.AssertNotCalled(t, "FindProductByID", mock.Anything, mock.Anything)
	})

	t.Run("snaps the requested quantity to 0.1 kg", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		products.On("FindProductByID", ctx, productID).Return(product(10.0), nil)
		carts.On("FindLineByUserAndProduct", ctx, userID, productID).Return(nil, repository.ErrCartLineNotFound)
		carts.On("UpsertLine", ctx, mock.MatchedBy(func(line *entity.CartLine) bool {
			return line.QuantityKg == 2.3
		})).Return(nil)

		result, err := newCartService(products, carts).AddToCart(ctx, userID, productID, 2.34)

		require.NoError(t, err)
		assert.Equal(t, 2.3, result.LineKg)
	})

	t.Run("rejects inactive products", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		inactive := product(10.0)
		inactive.Active = false
		products.On("FindProductByID", ctx, productID).Return(inactive, nil)

		_, err := newCartService(products, carts).AddToCart(ctx, userID, productID, 1.0)

		assert.ErrorIs(t, err, domainerrors.ErrProductUnavailable)
	})

	t.Run("rejects unknown products", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		products.On("FindProductByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

		_, err := newCartService(products, carts).AddToCart(ctx, userID, productID, 1.0)

		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	})
}

func TestCartService_SetQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()
	product := &entity.Product{ID: productID, Name: "Tomates", Price: 500, Stock: 10, Active: true}

	t.Run("overwrites the line quantity", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		existing := &entity.CartLine{ID: uuid.New(), UserID: userID, ProductID: productID, QuantityKg: 3.0, UnitPrice: 500}
		products.On("FindProductByID", ctx, productID).Return(product, nil)
		carts.On("FindLineByUserAndProduct", ctx, userID, productID).Return(existing, nil)
		carts.On("UpsertLine", ctx, mock.MatchedBy(func(line *entity.CartLine) bool {
			return line.ID == existing.ID && line.QuantityKg == 5.0
		})).Return(nil)

		err := newCartService(products, carts).SetQuantity(ctx, userID, productID, 5.0)

		require.NoError(t, err)
		carts.AssertExpectations(t)
	})

	t.Run("removes the line when the quantity drops to zero", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		carts.On("DeleteLine", ctx, userID, productID).Return(nil)

		err := newCartService(products, carts).SetQuantity(ctx, userID, productID, 0)

		require.NoError(t, err)
		carts.AssertExpectations(t)
		products.AssertNotCalled(t, "FindProductByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects quantities above live stock", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		products.On("FindProductByID", ctx, productID).Return(product, nil)

		err := newCartService(products, carts).SetQuantity(ctx, userID, productID, 11.0)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrStockExceeded.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("errors when the line does not exist", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		products.On("FindProductByID", ctx, productID).Return(product, nil)
		carts.On("FindLineByUserAndProduct", ctx, userID, productID).Return(nil, repository.ErrCartLineNotFound)

		err := newCartService(products, carts).SetQuantity(ctx, userID, productID, 2.0)

		assert.ErrorIs(t, err, domainerrors.ErrCartLineNotFound)
	})
}

func TestCartService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("remove is idempotent", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		carts.On("DeleteLine", ctx, userID, productID).Return(nil).Twice()

		svc := newCartService(products, carts)
		require.NoError(t, svc.Remove(ctx, userID, productID))
		require.NoError(t, svc.Remove(ctx, userID, productID))
		carts.AssertExpectations(t)
	})

	t.Run("clear drops every line of the user", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		carts.On("DeleteLinesByUser", ctx, userID).Return(nil)

		require.NoError(t, newCartService(products, carts).Clear(ctx, userID))
		carts.AssertExpectations(t)
	})
}

func TestCartService_GetCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("drops lines of inactive products and counts them once per batch", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		activeID, goneID, inactiveID := uuid.New(), uuid.New(), uuid.New()
		lines := []*entity.CartLine{
			{ID: uuid.New(), UserID: userID, ProductID: activeID, QuantityKg: 2.0, UnitPrice: 500},
			{ID: uuid.New(), UserID: userID, ProductID: goneID, QuantityKg: 1.0, UnitPrice: 300},
			{ID: uuid.New(), UserID: userID, ProductID: inactiveID, QuantityKg: 1.5, UnitPrice: 200},
		}
		carts.On("FindLinesByUser", ctx, userID).Return(lines, nil)
		products.On("FindProductByID", ctx, activeID).Return(&entity.Product{ID: activeID, Name: "Tomates", Price: 500, Stock: 10, Active: true}, nil)
		products.On("FindProductByID", ctx, goneID).Return(nil, repository.ErrProductNotFound)
		products.On("FindProductByID", ctx, inactiveID).Return(&entity.Product{ID: inactiveID, Price: 200, Stock: 4, Active: false}, nil)
		carts.On("DeleteLineByID", ctx, lines[1].ID).Return(nil)
		carts.On("DeleteLineByID", ctx, lines[2].ID).Return(nil)

		cart, err := newCartService(products, carts).GetCart(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, 2, cart.RemovedCount)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, "Tomates", cart.Lines[0].Name)
		carts.AssertExpectations(t)
	})

	t.Run("flags price changes, totals with the live price and advances the cache", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		productID := uuid.New()
		line := &entity.CartLine{ID: uuid.New(), UserID: userID, ProductID: productID, QuantityKg: 2.0, UnitPrice: 500}
		carts.On("FindLinesByUser", ctx, userID).Return([]*entity.CartLine{line}, nil)
		products.On("FindProductByID", ctx, productID).Return(&entity.Product{ID: productID, Price: 600, Stock: 10, Active: true}, nil)
		carts.On("UpdateLinePrice", ctx, line.ID, 600.0).Return(nil)

		cart, err := newCartService(products, carts).GetCart(ctx, userID)

		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.True(t, cart.Lines[0].PriceChanged)
		assert.Equal(t, 500.0, cart.Lines[0].PreviousPrice)
		assert.Equal(t, 600.0, cart.Lines[0].UnitPrice)
		assert.Equal(t, int64(1200), cart.RoundedTotal())
		carts.AssertExpectations(t)
	})

	t.Run("flags stock shortfalls without clamping the quantity", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		productID := uuid.New()
		line := &entity.CartLine{ID: uuid.New(), UserID: userID, ProductID: productID, QuantityKg: 5.0, UnitPrice: 500}
		carts.On("FindLinesByUser", ctx, userID).Return([]*entity.CartLine{line}, nil)
		products.On("FindProductByID", ctx, productID).Return(&entity.Product{ID: productID, Price: 500, Stock: 2, Active: true}, nil)

		cart, err := newCartService(products, carts).GetCart(ctx, userID)

		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.True(t, cart.Lines[0].StockShrunk)
		assert.Equal(t, 5.0, cart.Lines[0].QuantityKg)
		assert.True(t, cart.HasStockShortfall())
	})

	t.Run("flags low stock under the configured threshold", func(t *testing.T) {
		products := new(mockProductRepository)
		carts := new(mockCartRepository)
		productID := uuid.New()
		line := &entity.CartLine{ID: uuid.New(), UserID: userID, ProductID: productID, QuantityKg: 1.0, UnitPrice: 500}
		carts.On("FindLinesByUser", ctx, userID).Return([]*entity.CartLine{line}, nil)
		products.On("FindProductByID", ctx, productID).Return(&entity.Product{ID: productID, Price: 500, Stock: 3, Active: true}, nil)

		cart, err := newCartService(products, carts).GetCart(ctx, userID)

		require.NoError(t, err)
		assert.True(t, cart.Lines[0].LowStock)
	})
}
