package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned before any network call when the
	// active settings carry an empty API key
	ErrMissingCredential = errors.New("AI API key is not configured")

	// ErrUnparseableResponse is returned when no JSON document can be
	// extracted from a provider response
	ErrUnparseableResponse = errors.New("could not parse AI response as JSON")

	// ErrInvalidStrategyFormat is returned when a strategy response
	// contains no array in any recognized position
	ErrInvalidStrategyFormat = errors.New("invalid strategy format: expected array")
)

// ProviderHTTPError carries the status code and raw body of a failed
// provider request so callers can surface provider diagnostics verbatim
type ProviderHTTPError struct {
	StatusCode int
	Body       string
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("AI provider error (%d): %s", e.StatusCode, e.Body)
}

// MissingFieldError is returned when a structured response parses as
// JSON but lacks the field the operation requires
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("AI response missing expected field %q", e.Field)
}
