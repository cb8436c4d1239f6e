package store

import (
	"errors"
	"fmt"
)

// ErrCorrupted is returned by Load when the persisted document exists but
// cannot be decoded. The store never treats a corrupt document as empty,
// otherwise the next write would silently destroy the user's data.
var ErrCorrupted = errors.New("persisted content is corrupted")

// ValidationError reports a field rejected at the store boundary
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func requiredErr(field string) error {
	return &ValidationError{Field: field, Reason: "must not be empty"}
}

func ratingErr(field string) error {
	return &ValidationError{Field: field, Reason: "must be between 1 and 10"}
}

func validRating(r *int) bool {
	return r == nil || (*r >= 1 && *r <= 10)
}
