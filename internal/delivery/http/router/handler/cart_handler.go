package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart-related handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

type addItemRequest struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// cartEntryView is one cart line joined with its catalog item.
type cartEntryView struct {
	Item     itemView `json:"item"`
	Quantity int      `json:"quantity"`
}

func toCartEntryViews(entries []*entity.CartEntry) []cartEntryView {
	views := make([]cartEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, cartEntryView{
			Item:     toItemView(entry.Item),
			Quantity: entry.Quantity,
		})
	}

	return views
}

// AddItem handles adding an item to the authenticated account's cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid account ID in token")
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid item ID format")
	}

	if err := h.uc.AddItem(c.Request().Context(), &usecase.AddItemInput{
		AccountID: accountID,
		ItemID:    itemID,
		Quantity:  req.Quantity,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"itemId":   itemID,
		"quantity": req.Quantity,
	}, "Item added to cart")
}

// ListCart handles listing the authenticated account's cart.
func (h *CartHandler) ListCart(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid account ID in token")
	}

	entries, err := h.uc.ListCart(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartEntryViews(entries), "Cart retrieved successfully")
}

// RemoveItem handles removing an item from the authenticated account's cart.
// The operation is idempotent and always answers 204 on success.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid account ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid item ID format")
	}

	if err := h.uc.RemoveItem(c.Request().Context(), accountID, itemID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
