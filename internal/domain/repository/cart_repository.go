// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CartRepository defines the standard operations for cart line persistence.
type CartRepository interface {
	// Upsert inserts the cart line or, when the (account, item) pair already
	// exists, adds the line's quantity to the stored quantity. The operation
	// is a single conditional write so concurrent adds never lose updates.
	Upsert(ctx context.Context, line *entity.CartLine) error

	// ListByAccount retrieves the account's cart lines joined with their
	// catalog items. Order is stable within a single call.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CartEntry, error)

	// Delete removes the cart line for the (account, item) pair.
	// Deleting an absent line is not an error.
	Delete(ctx context.Context, accountID, itemID uuid.UUID) error
}
