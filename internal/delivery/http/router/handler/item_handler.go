package handler

import (
	"log/slog"
	"net/http"
	"time"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ItemHandler holds dependencies for catalog item handlers.
type ItemHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewItemHandler is the constructor for ItemHandler, injected by Fx.
func NewItemHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		uc:     uc,
		logger: logger,
	}
}

type createItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

type updateItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

// itemView is the catalog item representation returned to clients.
type itemView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toItemView(item *entity.Item) itemView {
	if item == nil {
		return itemView{}
	}

	return itemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemViews(items []*entity.Item) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item))
	}

	return views
}

// CreateItem handles adding a new item to the catalog.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.uc.CreateItem(c.Request().Context(), &usecase.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toItemView(item), "Item created successfully")
}

// GetItem handles fetching a single catalog item.
func (h *ItemHandler) GetItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid item ID format")
	}

	item, err := h.uc.GetItem(c.Request().Context(), itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemView(item), "Item retrieved successfully")
}

// ListItems handles listing the catalog.
func (h *ItemHandler) ListItems(c echo.Context) error {
	items, err := h.uc.ListItems(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemViews(items), "Items retrieved successfully")
}

// UpdateItem handles updating an existing catalog item.
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid item ID format")
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.uc.UpdateItem(c.Request().Context(), &usecase.UpdateItemInput{
		ID:          itemID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemView(item), "Item updated successfully")
}

// DeleteItem handles removing a catalog item.
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid item ID format")
	}

	if err := h.uc.DeleteItem(c.Request().Context(), itemID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
