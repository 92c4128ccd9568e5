// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Item is a catalog entry that can be placed into a cart.
type Item struct {
	ID          uuid.UUID // The unique ID for this catalog item.
	Name        string    // The item's display name.
	Description string    // A free-form description of the item.
	Price       float64   // Unit price of the item.
	Quantity    int       // Stock quantity recorded for the item.
	CreatedAt   time.Time // Timestamp of when this item was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this item.
}
