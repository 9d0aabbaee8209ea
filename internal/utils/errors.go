package utils

import (
	"errors"
	"strings"
)

// Common application errors used across services.
var (
	ErrProductNotFound          = errors.New("PRODUCT_NOT_FOUND")
	ErrBrandNotFound            = errors.New("BRAND_NOT_FOUND")
	ErrLearningPathNotFound     = errors.New("LEARNING_PATH_NOT_FOUND")
	ErrLearningPathItemNotFound = errors.New("LEARNING_PATH_ITEM_NOT_FOUND")
)

// FieldError describes one rejected field of a payload.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every field-level violation of a payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}
