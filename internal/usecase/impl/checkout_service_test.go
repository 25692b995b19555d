package impl

import (
	"context"
	"testing"

	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/errors"
	"vmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	products  *mockProductRepository
	carts     *mockCartRepository
	orders    *mockOrderRepository
	customers *mockCustomerRepository
	addresses *mockAddressRepository
	publisher *mockEventPublisher
	svc       usecase.CheckoutUsecase
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		products:  new(mockProductRepository),
		carts:     new(mockCartRepository),
		orders:    new(mockOrderRepository),
		customers: new(mockCustomerRepository),
		addresses: new(mockAddressRepository),
		publisher: new(mockEventPublisher),
	}
	f.svc = NewCheckoutService(CheckoutServiceParams{
		TxManager: &stubTransactionManager{products: f.products, carts: f.carts, orders: f.orders},
		Products:  f.products,
		Carts:     f.carts,
		Customers: f.customers,
		Addresses: f.addresses,
		Publisher: f.publisher,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	return f
}

func TestCheckoutService_Review(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	line := &entity.CartLine{ID: uuid.New(), UserID: userID, ProductID: productID, QuantityKg: 3.0, UnitPrice: 500}
	product := &entity.Product{ID: productID, Name: "Tomates", Price: 500, Stock: 10, Active: true}
	profile := &entity.CustomerProfile{ID: userID, Name: "Awa", Phone: "0512345678", Commune: "Cocody"}

	t.Run("summarises the cart with the commune address", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return([]*entity.CartLine{line}, nil)
		f.products.On("FindProductByID", ctx, productID).Return(product, nil)
		f.customers.On("FindProfileByID", ctx, userID).Return(profile, nil)
		f.addresses.On("FindAddressByCommune", ctx, "Cocody").Return(&entity.LocalAddress{Commune: "Cocody", Address: "Marché de Cocody"}, nil)

		review, err := f.svc.Review(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, "Cocody", review.Commune)
		assert.Equal(t, "Marché de Cocody", review.Address)
		assert.True(t, review.AddressDefined)
		assert.Contains(t, review.MapsURL, "google.com/maps/search")
		assert.Equal(t, int64(1500), review.Total)
	})

	t.Run("falls back to the undefined address marker", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return([]*entity.CartLine{line}, nil)
		f.products.On("FindProductByID", ctx, productID).Return(product, nil)
		f.customers.On("FindProfileByID", ctx, userID).Return(profile, nil)
		f.addresses.On("FindAddressByCommune", ctx, "Cocody").Return(nil, repository.ErrAddressNotFound)

		review, err := f.svc.Review(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, entity.AddressUndefined, review.Address)
		assert.False(t, review.AddressDefined)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return([]*entity.CartLine{}, nil)

		_, err := f.svc.Review(ctx, userID)

		assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
	})
}

func TestCheckoutService_Commit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tomatoID := uuid.New()
	onionID := uuid.New()

	lines := func() []*entity.CartLine {
		return []*entity.CartLine{
			{ID: uuid.New(), UserID: userID, ProductID: tomatoID, QuantityKg: 3.0, UnitPrice: 500},
			{ID: uuid.New(), UserID: userID, ProductID: onionID, QuantityKg: 1.5, UnitPrice: 200},
		}
	}
	tomato := &entity.Product{ID: tomatoID, Name: "Tomates", Price: 500, Stock: 10, Active: true}
	onion := &entity.Product{ID: onionID, Name: "Oignons", Price: 200, Stock: 8, Active: true}
	profile := &entity.CustomerProfile{ID: userID, Name: "Awa", Phone: "0512345678", Commune: "Cocody"}

	t.Run("writes the order, decrements stock and clears the cart", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return(lines(), nil)
		f.customers.On("FindProfileByID", ctx, userID).Return(profile, nil)
		f.products.On("FindProductByID", ctx, tomatoID).Return(tomato, nil)
		f.products.On("FindProductByID", ctx, onionID).Return(onion, nil)
		f.orders.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
		f.products.On("DecrementStock", ctx, tomatoID, 3.0).Return(nil)
		f.products.On("DecrementStock", ctx, onionID, 1.5).Return(nil)
		f.carts.On("DeleteLinesByUser", ctx, userID).Return(nil)
		f.publisher.On("PublishOrderPlaced", ctx, mock.AnythingOfType("*service.OrderPlacedEvent")).Return(nil)

		order, err := f.svc.Commit(ctx, userID)

		require.NoError(t, err)
		assert.Regexp(t, `^VM-\d{8}-[0-9A-Z]{6}$`, order.Reference)
		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, "Awa", order.CustomerName)
		assert.Equal(t, "Cocody", order.CustomerCommune)
		require.Len(t, order.Items, 2)
		assert.Equal(t, int64(1500), order.Items[0].Total)
		assert.Equal(t, int64(300), order.Items[1].Total)
		assert.Equal(t, int64(1800), order.Total)
		assert.Equal(t, entity.AdminStatusPending, order.AdminStatus)
		assert.Equal(t, entity.CustomerStatusPlaced, order.CustomerStatus)
		assert.False(t, order.PenaltyActive)
		f.orders.AssertExpectations(t)
		f.products.AssertExpectations(t)
		f.carts.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("snapshots the fallback profile when none is stored", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return(lines()[:1], nil)
		f.customers.On("FindProfileByID", ctx, userID).Return(nil, repository.ErrCustomerNotFound)
		f.products.On("FindProductByID", ctx, tomatoID).Return(tomato, nil)
		f.orders.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
		f.products.On("DecrementStock", ctx, tomatoID, 3.0).Return(nil)
		f.carts.On("DeleteLinesByUser", ctx, userID).Return(nil)
		f.publisher.On("PublishOrderPlaced", ctx, mock.Anything).Return(nil)

		order, err := f.svc.Commit(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, entity.DefaultCustomerName, order.CustomerName)
		assert.Equal(t, entity.DefaultCustomerCommune, order.CustomerCommune)
	})

	t.Run("rejects an empty cart before touching the transaction", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return([]*entity.CartLine{}, nil)

		_, err := f.svc.Commit(ctx, userID)

		assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
		f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("aborts with zero writes when the recheck finds a shortfall", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return(lines()[:1], nil)
		f.customers.On("FindProfileByID", ctx, userID).Return(profile, nil)
		shrunk := &entity.Product{ID: tomatoID, Name: "Tomates", Price: 500, Stock: 1, Active: true}
		f.products.On("FindProductByID", ctx, tomatoID).Return(shrunk, nil)

		_, err := f.svc.Commit(ctx, userID)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrStockExceeded.ErrorCode(), appErr.ErrorCode())
		f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		f.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
		f.carts.AssertNotCalled(t, "DeleteLinesByUser", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
	})

	t.Run("surfaces a race lost on the conditional decrement", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return(lines()[:1], nil)
		f.customers.On("FindProfileByID", ctx, userID).Return(profile, nil)
		f.products.On("FindProductByID", ctx, tomatoID).Return(tomato, nil)
		f.orders.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
		f.products.On("DecrementStock", ctx, tomatoID, 3.0).Return(repository.ErrInsufficientStock)

		_, err := f.svc.Commit(ctx, userID)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrInsufficientStock.ErrorCode(), appErr.ErrorCode())
		f.publisher.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
	})

	t.Run("names the failed step on an insert error", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return(lines()[:1], nil)
		f.customers.On("FindProfileByID", ctx, userID).Return(profile, nil)
		f.products.On("FindProductByID", ctx, tomatoID).Return(tomato, nil)
		f.orders.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).Return(errors.New("insert failed"))

		_, err := f.svc.Commit(ctx, userID)

		var stepErr *usecase.CommitStepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, usecase.StepOrderInsert, stepErr.Step)
	})

	t.Run("a publish failure does not fail the commit", func(t *testing.T) {
		f := newCheckoutFixture()
		f.carts.On("FindLinesByUser", ctx, userID).Return(lines()[:1], nil)
		f.customers.On("FindProfileByID", ctx, userID).Return(profile, nil)
		f.products.On("FindProductByID", ctx, tomatoID).Return(tomato, nil)
		f.orders.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
		f.products.On("DecrementStock", ctx, tomatoID, 3.0).Return(nil)
		f.carts.On("DeleteLinesByUser", ctx, userID).Return(nil)
		f.publisher.On("PublishOrderPlaced", ctx, mock.Anything).Return(errors.New("broker down"))

		order, err := f.svc.Commit(ctx, userID)

		require.NoError(t, err)
		assert.NotNil(t, order)
	})
}
