package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories and services when a referenced
// identifier does not exist. Handlers translate it to 404.
var ErrNotFound = errors.New("registro não encontrado")

// ValidationError is a client-fault error: a bad field value or a violated
// business rule. Handlers translate it to 400 with the message as-is.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
