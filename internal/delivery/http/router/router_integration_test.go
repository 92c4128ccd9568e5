package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"bazaar/config"
	deliveryhttpmw "bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"
	"bazaar/internal/delivery/http/validator"
	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/infra/auth"
	"bazaar/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- In-memory persistence doubles ---

type memoryStore struct {
	accounts map[uuid.UUID]*entity.Account
	items    map[uuid.UUID]*entity.Item
	lines    map[uuid.UUID]map[uuid.UUID]*entity.CartLine // accountID -> itemID -> line
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts: make(map[uuid.UUID]*entity.Account),
		items:    make(map[uuid.UUID]*entity.Item),
		lines:    make(map[uuid.UUID]map[uuid.UUID]*entity.CartLine),
	}
}

type memoryAccountRepo struct{ store *memoryStore }

func (r *memoryAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if account, ok := r.store.accounts[id]; ok {
		return account, nil
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memoryAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, account := range r.store.accounts {
		if account.Email == email {
			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memoryAccountRepo) Create(_ context.Context, account *entity.Account) error {
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.store.accounts[account.ID] = account

	return nil
}

type memoryItemRepo struct{ store *memoryStore }

func (r *memoryItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	if item, ok := r.store.items[id]; ok {
		return item, nil
	}

	return nil, repository.ErrItemNotFound
}

func (r *memoryItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	items := make([]*entity.Item, 0, len(r.store.items))
	for _, item := range r.store.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })

	return items, nil
}

func (r *memoryItemRepo) Create(_ context.Context, item *entity.Item) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.store.items[item.ID] = item

	return nil
}

func (r *memoryItemRepo) Update(_ context.Context, item *entity.Item) error {
	stored, ok := r.store.items[item.ID]
	if !ok {
		return repository.ErrItemNotFound
	}
	stored.Name = item.Name
	stored.Description = item.Description
	stored.Price = item.Price
	stored.Quantity = item.Quantity
	stored.UpdatedAt = time.Now()

	return nil
}

func (r *memoryItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(r.store.items, id)

	return nil
}

type memoryCartRepo struct{ store *memoryStore }

func (r *memoryCartRepo) Upsert(_ context.Context, line *entity.CartLine) error {
	// Mirrors the foreign key on cart_lines.item_id.
	if _, ok := r.store.items[line.ItemID]; !ok {
		return repository.ErrItemNotFound
	}

	accountLines, ok := r.store.lines[line.AccountID]
	if !ok {
		accountLines = make(map[uuid.UUID]*entity.CartLine)
		r.store.lines[line.AccountID] = accountLines
	}

	if existing, ok := accountLines[line.ItemID]; ok {
		existing.Quantity += line.Quantity
		existing.UpdatedAt = time.Now()

		return nil
	}

	line.CreatedAt = time.Now()
	line.UpdatedAt = line.CreatedAt
	accountLines[line.ItemID] = line

	return nil
}

func (r *memoryCartRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.CartEntry, error) {
	accountLines := r.store.lines[accountID]
	lines := make([]*entity.CartLine, 0, len(accountLines))
	for _, line := range accountLines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].CreatedAt.Before(lines[j].CreatedAt) })

	entries := make([]*entity.CartEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, &entity.CartEntry{
			Item:     r.store.items[line.ItemID],
			Quantity: line.Quantity,
		})
	}

	return entries, nil
}

func (r *memoryCartRepo) Delete(_ context.Context, accountID, itemID uuid.UUID) error {
	if accountLines, ok := r.store.lines[accountID]; ok {
		delete(accountLines, itemID)
	}

	return nil
}

type memoryRepoFactory struct {
	accountRepo repository.AccountRepository
	itemRepo    repository.ItemRepository
	cartRepo    repository.CartRepository
}

func (f *memoryRepoFactory) NewAccountRepository() repository.AccountRepository { return f.accountRepo }
func (f *memoryRepoFactory) NewItemRepository() repository.ItemRepository      { return f.itemRepo }
func (f *memoryRepoFactory) NewCartRepository() repository.CartRepository      { return f.cartRepo }

type memoryTxManager struct{ factory repository.RepositoryFactory }

func (m *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type discardPublisher struct{}

func (discardPublisher) PublishActivityEvent(context.Context, *service.ActivityEvent) error {
	return nil
}
func (discardPublisher) Close() error { return nil }

// --- Test application wiring ---

func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Session = "integration-test-secret"
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost, TokenTTL: time.Hour}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := newMemoryStore()
	accountRepo := &memoryAccountRepo{store: store}
	itemRepo := &memoryItemRepo{store: store}
	cartRepo := &memoryCartRepo{store: store}
	txManager := &memoryTxManager{factory: &memoryRepoFactory{
		accountRepo: accountRepo,
		itemRepo:    itemRepo,
		cartRepo:    cartRepo,
	}}

	hasher := auth.NewBcryptHasher(cfg)
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	accountUC := impl.NewAccountService(impl.AccountServiceParams{
		TxManager:    txManager,
		AccountRepo:  accountRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Publisher:    discardPublisher{},
		Logger:       logger,
	})
	cartUC := impl.NewCartService(impl.CartServiceParams{
		CartRepo:  cartRepo,
		Publisher: discardPublisher{},
		Logger:    logger,
	})
	catalogUC := impl.NewCatalogService(impl.CatalogServiceParams{
		ItemRepo: itemRepo,
		Logger:   logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Validator = validator.New()
	e.HTTPErrorHandler = deliveryhttpmw.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		AccountHandler: handler.NewAccountHandler(accountUC, logger),
		CartHandler:    handler.NewCartHandler(cartUC, logger),
		ItemHandler:    handler.NewItemHandler(catalogUC, logger),
		AuthMiddleware: deliveryhttpmw.NewAuthMiddleware(tokenSvc),
	})
	r.RegisterRoutes(e)

	return e
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func doRequest(t *testing.T, e *echo.Echo, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func TestAPI_SignupLoginCartScenario(t *testing.T) {
	e := newTestApp(t)

	// Health check.
	rec, _ := doRequest(t, e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Signup succeeds and never echoes the password or its hash.
	rec, env := doRequest(t, e, http.MethodPost, "/api/signup", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "sup3r-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "alice@example.com")
	assert.NotContains(t, rec.Body.String(), "sup3r-secret")
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	// A second signup with the same email is rejected with 400 EMAIL_TAKEN.
	rec, env = doRequest(t, e, http.MethodPost, "/api/signup", "", map[string]any{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "another-secret",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EMAIL_TAKEN", env.Error.Code)

	// Wrong password and unknown email yield identical error codes.
	rec, env = doRequest(t, e, http.MethodPost, "/api/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	wrongPasswordBody := rec.Body.String()

	rec, env = doRequest(t, e, http.MethodPost, "/api/login", "", map[string]any{
		"email":    "ghost@example.com",
		"password": "sup3r-secret",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	assert.Equal(t, wrongPasswordBody, rec.Body.String())

	// Successful login returns the session token and redirect target.
	rec, env = doRequest(t, e, http.MethodPost, "/api/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "sup3r-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loginData struct {
		Token       string    `json:"token"`
		AccountID   uuid.UUID `json:"accountId"`
		RedirectURL string    `json:"redirectUrl"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginData))
	assert.NotEmpty(t, loginData.Token)
	assert.Equal(t, "/dashboard", loginData.RedirectURL)

	// The profile route rejects anonymous requests and serves authenticated ones.
	rec, _ = doRequest(t, e, http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = doRequest(t, e, http.MethodGet, "/api/user", loginData.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
		Name  string    `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, loginData.AccountID, profile.ID)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	// Seed a catalog item.
	rec, env = doRequest(t, e, http.MethodPost, "/api/items", "", map[string]any{
		"name":     "Keyboard",
		"price":    59.9,
		"quantity": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var item struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &item))

	// Adding the same item twice accumulates the quantity (2 + 3 = 5).
	rec, _ = doRequest(t, e, http.MethodPost, "/api/cart", loginData.Token, map[string]any{
		"itemId":   item.ID,
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, e, http.MethodPost, "/api/cart", loginData.Token, map[string]any{
		"itemId":   item.ID,
		"quantity": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doRequest(t, e, http.MethodGet, "/api/cart", loginData.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []struct {
		Item struct {
			ID   uuid.UUID `json:"id"`
			Name string    `json:"name"`
		} `json:"item"`
		Quantity int `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, item.ID, entries[0].Item.ID)
	assert.Equal(t, "Keyboard", entries[0].Item.Name)
	assert.Equal(t, 5, entries[0].Quantity)

	// Cart routes require authentication.
	rec, _ = doRequest(t, e, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown items cannot be added.
	rec, env = doRequest(t, e, http.MethodPost, "/api/cart", loginData.Token, map[string]any{
		"itemId":   uuid.New(),
		"quantity": 1,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ITEM_NOT_FOUND", env.Error.Code)

	// Zero and negative quantities are rejected.
	rec, _ = doRequest(t, e, http.MethodPost, "/api/cart", loginData.Token, map[string]any{
		"itemId":   item.ID,
		"quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Removal answers 204 and is idempotent.
	rec, _ = doRequest(t, e, http.MethodDelete, fmt.Sprintf("/api/cart/%s", item.ID), loginData.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doRequest(t, e, http.MethodDelete, fmt.Sprintf("/api/cart/%s", item.ID), loginData.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = doRequest(t, e, http.MethodGet, "/api/cart", loginData.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries = nil
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	assert.Empty(t, entries)
}

func TestAPI_ItemCRUD(t *testing.T) {
	e := newTestApp(t)

	// Create.
	rec, env := doRequest(t, e, http.MethodPost, "/api/items", "", map[string]any{
		"name":        "Mouse",
		"description": "Wireless",
		"price":       19.9,
		"quantity":    3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Read.
	rec, env = doRequest(t, e, http.MethodGet, "/api/items/"+created.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Mouse")

	// Update.
	rec, env = doRequest(t, e, http.MethodPut, "/api/items/"+created.ID.String(), "", map[string]any{
		"name":        "Mouse v2",
		"description": "Wireless, quieter",
		"price":       24.9,
		"quantity":    5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Mouse v2")

	// List.
	rec, env = doRequest(t, e, http.MethodGet, "/api/items", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)

	// Delete, then the item is gone.
	rec, _ = doRequest(t, e, http.MethodDelete, "/api/items/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = doRequest(t, e, http.MethodGet, "/api/items/"+created.ID.String(), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ITEM_NOT_FOUND", env.Error.Code)
}
