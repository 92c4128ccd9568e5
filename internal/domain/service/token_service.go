package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by a session token.
type Claims struct {
	AccountID uuid.UUID `json:"accountId"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, time-limited session token for the account.
	Issue(accountID uuid.UUID) (string, error)

	// Verify checks the token's signature first, then its expiry, and returns
	// the embedded claims. Callers must treat every failure as one generic
	// unauthenticated outcome; the reason is not surfaced to clients.
	Verify(tokenString string) (*Claims, error)
}
