// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"bazaar/config"
	"bazaar/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session token secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Session),
		ttl:    cfg.TokenTTLOrDefault(),
	}, nil
}

// Issue creates a signed session token carrying the account identity claim.
func (s *jwtService) Issue(accountID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify checks the token's signature and expiry and returns the claims.
// A tampered signature and an expired token both come back as errors; the
// delivery layer collapses them into one generic unauthenticated response.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to verify session token")
	}
	if !token.Valid || claims.AccountID == uuid.Nil {
		return nil, pkgerrors.WithStack(jwt.ErrTokenInvalidClaims)
	}

	return claims, nil
}
