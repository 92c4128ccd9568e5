package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateItemInput defines the data required to create a catalog item.
type CreateItemInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// UpdateItemInput defines the data required to update a catalog item.
type UpdateItemInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// CatalogUsecase defines the interface for catalog item business operations.
type CatalogUsecase interface {
	CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	ListItems(ctx context.Context) ([]*entity.Item, error)
	UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
