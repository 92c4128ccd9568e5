package impl

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartServiceForTest(cartRepo *mockCartRepository, publisher *mockEventPublisher) usecase.CartUsecase {
	return &cartService{
		cartRepo:  cartRepo,
		publisher: publisher,
		logger:    newTestLogger(),
	}
}

func TestCartService_AddItem_Success(t *testing.T) {
	cartRepo := new(mockCartRepository)
	publisher := new(mockEventPublisher)
	svc := newCartServiceForTest(cartRepo, publisher)

	ctx := context.Background()
	accountID := uuid.New()
	itemID := uuid.New()

	cartRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.CartLine")).
		Run(func(args mock.Arguments) {
			line := args.Get(1).(*entity.CartLine)
			assert.Equal(t, accountID, line.AccountID)
			assert.Equal(t, itemID, line.ItemID)
			assert.Equal(t, 3, line.Quantity)
		}).
		Return(nil)
	publisher.On("PublishActivityEvent", ctx, mock.AnythingOfType("*service.ActivityEvent")).Return(nil)

	err := svc.AddItem(ctx, &usecase.AddItemInput{
		AccountID: accountID,
		ItemID:    itemID,
		Quantity:  3,
	})

	require.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	cartRepo := new(mockCartRepository)
	publisher := new(mockEventPublisher)
	svc := newCartServiceForTest(cartRepo, publisher)

	ctx := context.Background()

	for _, quantity := range []int{0, -1, -42} {
		err := svc.AddItem(ctx, &usecase.AddItemInput{
			AccountID: uuid.New(),
			ItemID:    uuid.New(),
			Quantity:  quantity,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
	}

	// The repository is never touched when validation fails.
	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_UnknownItem(t *testing.T) {
	cartRepo := new(mockCartRepository)
	publisher := new(mockEventPublisher)
	svc := newCartServiceForTest(cartRepo, publisher)

	ctx := context.Background()

	cartRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.CartLine")).
		Return(repository.ErrItemNotFound)

	err := svc.AddItem(ctx, &usecase.AddItemInput{
		AccountID: uuid.New(),
		ItemID:    uuid.New(),
		Quantity:  1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
	publisher.AssertNotCalled(t, "PublishActivityEvent", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_PublishFailureDoesNotFailAdd(t *testing.T) {
	cartRepo := new(mockCartRepository)
	publisher := new(mockEventPublisher)
	svc := newCartServiceForTest(cartRepo, publisher)

	ctx := context.Background()

	cartRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.CartLine")).Return(nil)
	publisher.On("PublishActivityEvent", ctx, mock.AnythingOfType("*service.ActivityEvent")).Return(assert.AnError)

	err := svc.AddItem(ctx, &usecase.AddItemInput{
		AccountID: uuid.New(),
		ItemID:    uuid.New(),
		Quantity:  2,
	})

	require.NoError(t, err)
}

func TestCartService_ListCart_Success(t *testing.T) {
	cartRepo := new(mockCartRepository)
	publisher := new(mockEventPublisher)
	svc := newCartServiceForTest(cartRepo, publisher)

	ctx := context.Background()
	accountID := uuid.New()
	entries := []*entity.CartEntry{
		{Item: &entity.Item{ID: uuid.New(), Name: "Keyboard", Price: 59.9}, Quantity: 5},
		{Item: &entity.Item{ID: uuid.New(), Name: "Mouse", Price: 19.9}, Quantity: 1},
	}

	cartRepo.On("ListByAccount", ctx, accountID).Return(entries, nil)

	got, err := svc.ListCart(ctx, accountID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Keyboard", got[0].Item.Name)
	assert.Equal(t, 5, got[0].Quantity)
}

func TestCartService_ListCart_Empty(t *testing.T) {
	cartRepo := new(mockCartRepository)
	publisher := new(mockEventPublisher)
	svc := newCartServiceForTest(cartRepo, publisher)

	ctx := context.Background()
	accountID := uuid.New()

	cartRepo.On("ListByAccount", ctx, accountID).Return([]*entity.CartEntry{}, nil)

	got, err := svc.ListCart(ctx, accountID)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCartService_RemoveItem_Success(t *testing.T) {
	cartRepo := new(mockCartRepository)
	publisher := new(mockEventPublisher)
	svc := newCartServiceForTest(cartRepo, publisher)

	ctx := context.Background()
	accountID := uuid.New()
	itemID := uuid.New()

	cartRepo.On("Delete", ctx, accountID, itemID).Return(nil)
	publisher.On("PublishActivityEvent", ctx, mock.AnythingOfType("*service.ActivityEvent")).
		Run(func(args mock.Arguments) {
			event := args.Get(1).(*service.ActivityEvent)
			assert.Equal(t, service.EventCartItemRemoved, event.EventType)
		}).
		Return(nil)

	err := svc.RemoveItem(ctx, accountID, itemID)

	require.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestCartService_RemoveItem_RepositoryError(t *testing.T) {
	cartRepo := new(mockCartRepository)
	publisher := new(mockEventPublisher)
	svc := newCartServiceForTest(cartRepo, publisher)

	ctx := context.Background()

	cartRepo.On("Delete", ctx, mock.Anything, mock.Anything).Return(assert.AnError)

	err := svc.RemoveItem(ctx, uuid.New(), uuid.New())

	require.Error(t, err)
	publisher.AssertNotCalled(t, "PublishActivityEvent", mock.Anything, mock.Anything)
}
