// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SignupOutput returns the newly created account's basic information.
type SignupOutput struct {
	Account *entity.Account
}

// LoginOutput returns the session token after a successful login.
type LoginOutput struct {
	Token       string
	Account     *entity.Account
	RedirectURL string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
}
