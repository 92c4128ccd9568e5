// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrItemNotFound is a domain-specific error returned when a catalog item is not found.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository defines the standard operations for catalog item persistence.
type ItemRepository interface {
	// FindByID retrieves a single item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// List retrieves all catalog items.
	List(ctx context.Context) ([]*entity.Item, error)

	// Create persists a new item to the storage.
	Create(ctx context.Context, item *entity.Item) error

	// Update modifies an existing item in the storage.
	Update(ctx context.Context, item *entity.Item) error

	// Delete removes an item from the storage.
	Delete(ctx context.Context, id uuid.UUID) error
}
