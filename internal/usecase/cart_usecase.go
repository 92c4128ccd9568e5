package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// AddItemInput defines the data required to add an item to an account's cart.
type AddItemInput struct {
	AccountID uuid.UUID
	ItemID    uuid.UUID
	Quantity  int
}

// CartUsecase defines the interface for cart-related business operations.
type CartUsecase interface {
	// AddItem adds the given quantity of an item to the account's cart.
	// Adding an item already in the cart accumulates its quantity.
	AddItem(ctx context.Context, input *AddItemInput) error

	// ListCart returns the account's cart lines joined with catalog data.
	ListCart(ctx context.Context, accountID uuid.UUID) ([]*entity.CartEntry, error)

	// RemoveItem removes an item from the account's cart. Removing an item
	// that is not in the cart succeeds without effect.
	RemoveItem(ctx context.Context, accountID, itemID uuid.UUID) error
}
