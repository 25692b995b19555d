package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vmarket/config"
	"vmarket/internal/domain/entity"
	domainerrors "vmarket/internal/domain/errors"
	"vmarket/internal/domain/repository"
	"vmarket/internal/domain/service"
	"vmarket/internal/errors"
	"vmarket/internal/usecase"
	"vmarket/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type checkoutService struct {
	txManager repository.TransactionManager
	products  repository.ProductRepository
	carts     repository.CartRepository
	customers repository.CustomerRepository
	addresses repository.AddressRepository
	publisher service.EventPublisher
	config    *config.Config
	logger    *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Products  repository.ProductRepository
	Carts     repository.CartRepository
	Customers repository.CustomerRepository
	Addresses repository.AddressRepository
	Publisher service.EventPublisher `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service instance.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager: params.TxManager,
		products:  params.Products,
		carts:     params.Carts,
		customers: params.Customers,
		addresses: params.Addresses,
		publisher: params.Publisher,
		config:    params.Config,
		logger:    params.Logger,
	}
}

// Review reconciles the cart and resolves the destination address for the
// user's commune. A commune without a directory entry yields the explicit
// "address undefined" marker; it never blocks the order.
func (s *checkoutService) Review(ctx context.Context, userID uuid.UUID) (*usecase.CheckoutReview, error) {
	lines, err := s.carts.FindLinesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	rec := newReconciler(s.products, s.carts, s.config.Market.LowStockThresholdKg, s.logger)
	cart, err := rec.reconcile(ctx, lines)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domainerrors.ErrEmptyCart
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	review := &usecase.CheckoutReview{
		Cart:    cart,
		Commune: profile.Commune,
		Total:   cart.RoundedTotal(),
	}

	address, err := s.addresses.FindAddressByCommune(ctx, profile.Commune)
	switch {
	case err == nil:
		review.Address = address.Address
		review.AddressDefined = true
		review.MapsURL = util.MapsSearchURL(address.Address, profile.Commune)
	case errors.Is(err, repository.ErrAddressNotFound):
		review.Address = entity.AddressUndefined
		review.MapsURL = util.MapsSearchURL("", profile.Commune)
	default:
		return nil, errors.Wrap(err, "failed to resolve commune address")
	}

	return review, nil
}

// Commit converts the cart into an order. The final price/stock recheck, the
// order insert, the per-line conditional stock decrements and the cart clear
// all run inside one database transaction: a failure at any step rolls back
// every prior write and reports which step broke.
func (s *checkoutService) Commit(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	state := entity.CheckoutIdle
	advance := func(to entity.CheckoutState) {
		if !state.CanAdvance(to) {
			s.logger.Error("invalid checkout state transition",
				slog.String("from", string(state)),
				slog.String("to", string(to)),
			)

			return
		}
		s.logger.Debug("checkout state transition",
			slog.String("from", string(state)),
			slog.String("to", string(to)),
			slog.String("userID", userID.String()),
		)
		state = to
	}

	lines, err := s.carts.FindLinesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}
	if len(lines) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}
	advance(entity.CheckoutReviewing)

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	advance(entity.CheckoutCommitting)

	var order *entity.Order
	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		txProducts := repos.NewProductRepository()
		txCarts := repos.NewCartRepository()
		txOrders := repos.NewOrderRepository()

		// Step 1: final reconcile against live prices and stock.
		rec := newReconciler(txProducts, txCarts, s.config.Market.LowStockThresholdKg, s.logger)
		cart, err := rec.reconcile(ctx, lines)
		if err != nil {
			return &usecase.CommitStepError{Step: usecase.StepRecheck, Err: err}
		}
		if cart.IsEmpty() {
			return domainerrors.ErrEmptyCart
		}
		for _, line := range cart.Lines {
			if line.StockShrunk {
				return domainerrors.ErrStockExceeded.WithDetails(
					fmt.Sprintf("%s: demande %.1f kg, stock %.1f kg", line.Name, line.QuantityKg, line.StockKg),
				)
			}
		}

		// Step 2: write the order with its line-item snapshot.
		items := make([]entity.OrderItem, 0, len(cart.Lines))
		var total int64
		for _, line := range cart.Lines {
			item := entity.NewOrderItem(line)
			items = append(items, item)
			total += item.Total
		}

		order = &entity.Order{
			ID:              uuid.New(),
			Reference:       entity.NewReference(s.config.Market.ReferencePrefix, time.Now()),
			UserID:          userID,
			CustomerName:    profile.Name,
			CustomerPhone:   profile.Phone,
			CustomerCommune: profile.Commune,
			Items:           items,
			Total:           total,
			AdminStatus:     entity.AdminStatusPending,
			CustomerStatus:  entity.CustomerStatusPlaced,
			CreatedAt:       time.Now(),
		}
		if err := txOrders.CreateOrder(ctx, order); err != nil {
			return &usecase.CommitStepError{Step: usecase.StepOrderInsert, Err: err}
		}

		// Step 3: conditional decrement per line. The guard catches stock
		// taken by a concurrent commit between our recheck and this write.
		for _, line := range cart.Lines {
			if err := txProducts.DecrementStock(ctx, line.ProductID, line.QuantityKg); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrInsufficientStock.WithDetails(line.Name)
				}

				return &usecase.CommitStepError{Step: usecase.StepStockUpdate, Err: err}
			}
		}

		// Step 4: clear the cart.
		if err := txCarts.DeleteLinesByUser(ctx, userID); err != nil {
			return &usecase.CommitStepError{Step: usecase.StepCartClear, Err: err}
		}

		return nil
	})
	if err != nil {
		advance(entity.CheckoutFailed)
		s.logger.Warn("checkout commit failed",
			slog.String("userID", userID.String()),
			slog.Any("error", err),
		)

		return nil, err
	}
	advance(entity.CheckoutCommitted)

	s.publishOrderPlaced(ctx, order)

	return order, nil
}

// publishOrderPlaced emits the order-placed event. The order is already
// durable, so publish failures are logged and swallowed.
func (s *checkoutService) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	if s.publisher == nil {
		return
	}

	var totalKg float64
	for _, item := range order.Items {
		totalKg += item.QuantityKg
	}

	event := &service.OrderPlacedEvent{
		Reference: order.Reference,
		UserID:    order.UserID.String(),
		Commune:   order.CustomerCommune,
		Total:     order.Total,
		ItemCount: len(order.Items),
		TotalKg:   totalKg,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Warn("failed to publish order placed event",
			slog.String("reference", order.Reference),
			slog.Any("error", err),
		)
	}
}

// loadProfile fetches the customer's contact details, falling back to the
// storefront's placeholder profile when none is stored.
func (s *checkoutService) loadProfile(ctx context.Context, userID uuid.UUID) (*entity.CustomerProfile, error) {
	profile, err := s.customers.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return entity.FallbackProfile(userID), nil
		}

		return nil, errors.Wrap(err, "failed to load customer profile")
	}

	return profile, nil
}
