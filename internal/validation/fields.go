// Package validation holds input rules shared by services: job postings and account registration.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"jobboard/internal/models"
)

// FieldErrors collects one message per invalid field, keyed by field name.
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Err returns a VALIDATION_ERROR AppError, or nil if nothing was recorded.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return models.NewFieldValidationError(f)
}

// Required records an error when value is blank and a length error when it exceeds max runes.
func (f FieldErrors) Required(field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		f.Add(field, fmt.Sprintf("The %s field is required.", field))
		return
	}
	f.MaxLength(field, value, max)
}

// MaxLength records an error when value exceeds max runes. A max of zero disables the check.
func (f FieldErrors) MaxLength(field, value string, max int) {
	if max > 0 && utf8.RuneCountInString(value) > max {
		f.Add(field, fmt.Sprintf("The field %s must be a string with a maximum length of %d.", field, max))
	}
}
