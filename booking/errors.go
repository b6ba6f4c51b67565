/*
errors.go - Centralized error types for the booking core

PURPOSE:
  All booking error types in one place. The API layer maps these onto
  HTTP statuses (validation/conflict -> 400, not found -> 404, the rest
  -> 500) without knowing anything about their internals.

USAGE:
  if errors.Is(err, booking.ErrBookingConflict) { ... }

  var verr *booking.ValidationError
  if errors.As(err, &verr) { ... }

SEE ALSO:
  - workflow.go: Produces these errors
  - api/handlers.go: Maps them to HTTP statuses
*/
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRequestNotFound is returned when a request id is unknown.
	ErrRequestNotFound = errors.New("rental request not found")

	// ErrBookingConflict is returned when a candidate range overlaps a
	// confirmed rental for the same article.
	ErrBookingConflict = errors.New("requested period is already booked")

	// ErrInvalidStatus is returned when a decision targets a status that is
	// not a valid decision outcome.
	ErrInvalidStatus = errors.New("status must be approved or rejected")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports invalid or missing submission fields.
type ValidationError struct {
	Fields []string // offending field names, may be empty
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
	}
	return e.Reason
}

// ConflictError reports which confirmed rental blocks a candidate range.
type ConflictError struct {
	ProductID string
	Requested DateRange
	Existing  DateRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("period %s conflicts with confirmed rental %s for article %s",
		e.Requested, e.Existing, e.ProductID)
}

func (e *ConflictError) Unwrap() error {
	return ErrBookingConflict
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, ErrBookingConflict) ||
		errors.Is(err, ErrInvalidStatus)
}

// IsNotFound returns true if the error indicates a missing request.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRequestNotFound)
}
