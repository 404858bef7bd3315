package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts validator/v10 to echo's Validator interface.
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator builds the validator wired into the echo instance.
func NewValidator() echo.Validator {
	return &CustomValidator{validate: validator.New()}
}

// Validate checks the struct tags on a bound request. Failures surface as
// validator.ValidationErrors so the central error handler can format them
// field by field.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}
