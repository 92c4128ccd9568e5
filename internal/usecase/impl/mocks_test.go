package impl

import (
	"context"
	"io"
	"log/slog"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Shared hand-written test doubles for the use case services.

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager executes the callback against a fixed repository factory,
// mimicking a committed transaction without a database.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// fakeRepoFactory hands out the pre-built repository mocks.
type fakeRepoFactory struct {
	accountRepo repository.AccountRepository
	itemRepo    repository.ItemRepository
	cartRepo    repository.CartRepository
}

func (f *fakeRepoFactory) NewAccountRepository() repository.AccountRepository { return f.accountRepo }
func (f *fakeRepoFactory) NewItemRepository() repository.ItemRepository      { return f.itemRepo }
func (f *fakeRepoFactory) NewCartRepository() repository.CartRepository      { return f.cartRepo }

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*entity.Item); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemRepository) List(ctx context.Context) ([]*entity.Item, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]*entity.Item); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemRepository) Create(ctx context.Context, item *entity.Item) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *mockItemRepository) Update(ctx context.Context, item *entity.Item) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *mockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Upsert(ctx context.Context, line *entity.CartLine) error {
	args := m.Called(ctx, line)

	return args.Error(0)
}

func (m *mockCartRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CartEntry, error) {
	args := m.Called(ctx, accountID)
	if entries, ok := args.Get(0).([]*entity.CartEntry); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartRepository) Delete(ctx context.Context, accountID, itemID uuid.UUID) error {
	args := m.Called(ctx, accountID, itemID)

	return args.Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(accountID uuid.UUID) (string, error) {
	args := m.Called(accountID)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishActivityEvent(ctx context.Context, event *service.ActivityEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}
