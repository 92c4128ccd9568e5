// Package validator adapts go-playground/validator to Echo's Validator hook.
package validator

import (
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps the go-playground validator for Echo.
type CustomValidator struct {
	validator *playground.Validate
}

// New creates the validator used by the Echo server.
func New() *CustomValidator {
	return &CustomValidator{
		validator: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Validation failures become 400 responses
// through the error middleware.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
