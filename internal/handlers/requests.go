package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/nfrund/guestmap/internal/domain"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator backed by the domain's validator
// instance, so request DTOs can use the same custom tags as the models.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: domain.Validator()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// CreateMessageRequest defines the DTO for the message creation endpoint.
// The rules mirror the domain model: the name pattern anchors the start only,
// and coordinates must lie inside the valid degree ranges.
type CreateMessageRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=30,alnumstart"`
	Message   string  `json:"message" validate:"required,min=5,max=100"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}
