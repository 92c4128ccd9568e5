package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo  repository.CartRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo  repository.CartRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:  params.CartRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddItem adds the given quantity of an item to the account's cart.
// Repeated adds for the same item accumulate the stored quantity.
func (srv *cartService) AddItem(ctx context.Context, input *usecase.AddItemInput) error {
	if input.Quantity <= 0 {
		return domainerrors.ErrInvalidQuantity
	}

	line := &entity.CartLine{
		AccountID: input.AccountID,
		ItemID:    input.ItemID,
		Quantity:  input.Quantity,
	}

	// Single conditional write - use direct repository instance
	if err := srv.cartRepo.Upsert(ctx, line); err != nil {
		srv.log(ctx).Warn("Failed to add item to cart",
			slog.Any("accountID", input.AccountID),
			slog.Any("itemID", input.ItemID),
			slog.Any("error", err),
		)

		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrItemNotFound
		}

		return errors.Wrap(err, "failed to upsert cart line")
	}

	srv.publishActivity(ctx, &service.ActivityEvent{
		EventType: service.EventCartItemAdded,
		AccountID: input.AccountID.String(),
		ItemID:    input.ItemID.String(),
		Quantity:  input.Quantity,
	})

	return nil
}

// ListCart returns the account's cart lines joined with catalog data.
func (srv *cartService) ListCart(ctx context.Context, accountID uuid.UUID) ([]*entity.CartEntry, error) {
	entries, err := srv.cartRepo.ListByAccount(ctx, accountID)
	if err != nil {
		srv.log(ctx).Error("Failed to list cart", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	return entries, nil
}

// RemoveItem removes an item from the account's cart. The operation is
// idempotent, removing an absent item succeeds without effect.
func (srv *cartService) RemoveItem(ctx context.Context, accountID, itemID uuid.UUID) error {
	if err := srv.cartRepo.Delete(ctx, accountID, itemID); err != nil {
		srv.log(ctx).Error("Failed to remove cart item",
			slog.Any("accountID", accountID),
			slog.Any("itemID", itemID),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "failed to delete cart line")
	}

	srv.publishActivity(ctx, &service.ActivityEvent{
		EventType: service.EventCartItemRemoved,
		AccountID: accountID.String(),
		ItemID:    itemID.String(),
	})

	return nil
}

// publishActivity forwards an activity event best-effort. Publishing failures
// are logged and never fail the originating request.
func (srv *cartService) publishActivity(ctx context.Context, event *service.ActivityEvent) {
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	event.OccurredAt = time.Now().UTC()

	if err := srv.publisher.PublishActivityEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish activity event",
			slog.String("event_type", event.EventType),
			slog.Any("error", err),
		)
	}
}
