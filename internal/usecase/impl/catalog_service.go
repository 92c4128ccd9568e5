package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	itemRepo repository.ItemRepository
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ItemRepo repository.ItemRepository
	Logger   *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		itemRepo: params.ItemRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateItem adds a new item to the catalog.
func (srv *catalogService) CreateItem(ctx context.Context, input *usecase.CreateItemInput) (*entity.Item, error) {
	item := &entity.Item{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}

	if err := srv.itemRepo.Create(ctx, item); err != nil {
		srv.log(ctx).Error("Failed to create item", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create item")
	}

	srv.log(ctx).Info("Item created", slog.Any("itemID", item.ID))

	return item, nil
}

// GetItem retrieves a single catalog item.
func (srv *catalogService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := srv.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by ID")
	}

	return item, nil
}

// ListItems retrieves all catalog items.
func (srv *catalogService) ListItems(ctx context.Context) ([]*entity.Item, error) {
	items, err := srv.itemRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list items", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list items")
	}

	return items, nil
}

// UpdateItem modifies an existing catalog item.
func (srv *catalogService) UpdateItem(ctx context.Context, input *usecase.UpdateItemInput) (*entity.Item, error) {
	item := &entity.Item{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}

	if err := srv.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		srv.log(ctx).Error("Failed to update item", slog.Any("itemID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update item")
	}

	return srv.GetItem(ctx, input.ID)
}

// DeleteItem removes an item from the catalog.
func (srv *catalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := srv.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrItemNotFound
		}

		srv.log(ctx).Error("Failed to delete item", slog.Any("itemID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete item")
	}

	srv.log(ctx).Info("Item deleted", slog.Any("itemID", id))

	return nil
}
