// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one (account, item) row of a shopping cart.
// The pair is the composite key; repeated adds accumulate Quantity.
type CartLine struct {
	AccountID uuid.UUID // Links the line to the owning Account.
	ItemID    uuid.UUID // Links the line to the catalog Item.
	Quantity  int       // Accumulated quantity; always a positive integer.
	CreatedAt time.Time // Timestamp of when this line was first added.
	UpdatedAt time.Time // Timestamp of the last quantity change.
}

// CartEntry is a cart line joined with its catalog item, as returned to callers.
type CartEntry struct {
	Item     *Item // The catalog item referenced by the line.
	Quantity int   // The accumulated quantity for this account/item pair.
}
