package errorz

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated      = errors.New("Not authenticated")
	ErrForbidden             = errors.New("Unauthorized - Admin access required")
	ErrEmailNotVerified      = errors.New("Email verification required")
	ErrNoActiveEvent         = errors.New("No active event found")
	ErrActiveEventExists     = errors.New("Cannot create event while an active event exists")
	ErrConcurrentEventUpdate = errors.New("Another event was activated concurrently, try again")
	ErrAlreadyRegistered     = errors.New("You have already registered for this event")
	ErrSubmissionConflict    = errors.New("Registration could not be saved, please try again")
	ErrNotRegistered         = errors.New("No completed registration found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidSession        = errors.New("invalid session")
)

// EventHasRegistrationsError is returned when an event still referenced by registrations is deleted.
type EventHasRegistrationsError struct {
	Count int64
}

func (e *EventHasRegistrationsError) Error() string {
	return fmt.Sprintf("Cannot delete event with %d registration(s). Remove registrations first.", e.Count)
}

// ValidationError describes a rejected input field. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
