package middleware

import (
	"strings"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyAccountID is the echo.Context key holding the authenticated account ID.
const ContextKeyAccountID = "accountID"

// AuthMiddleware provides middleware for session token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Bearer token and stores the account ID on the context.
// All failure modes return the same generic 401 so callers learn nothing about
// why a token was rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		// Set account info on the context for handlers to use
		c.Set(ContextKeyAccountID, claims.AccountID)

		return next(c)
	}
}
