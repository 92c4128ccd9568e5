// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core identity entity, representing one registered shopper.
type Account struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the account.
	Email        string    // The account's login identifier; unique, matched exactly as stored.
	Name         string    // The account's display name.
	PasswordHash string    // bcrypt hash of the password. Never serialized or logged; only PasswordHasher.Check reads it.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
