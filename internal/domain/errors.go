package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed field rejected at the API boundary.
// Invalid values are never persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to a nonexistent guild, template or
// schedule.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given entity and id.
func NewNotFoundError(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: fmt.Sprint(id)}
}

// ConflictError reports a referential or uniqueness violation, such as
// deleting a template that a schedule still references, or re-arming a
// schedule from a stale fired instant.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError builds a ConflictError.
func NewConflictError(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ConsistencyError reports an internal invariant violation, e.g. a recomputed
// next run that is not after the instant it was advanced from. It halts the
// affected schedule; the data is never silently rewritten.
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string {
	return "consistency violation: " + e.Message
}

// NewConsistencyError builds a ConsistencyError.
func NewConsistencyError(format string, args ...any) error {
	return &ConsistencyError{Message: fmt.Sprintf(format, args...)}
}

// DeliveryError reports a notifier failure. Permanent errors mean the
// destination is unusable and the schedule should be disabled; everything
// else is retried on the next poll tick.
type DeliveryError struct {
	Reason    string
	Permanent bool
	Err       error
}

func (e *DeliveryError) Error() string {
	kind := "retryable"
	if e.Permanent {
		kind = "permanent"
	}
	if e.Err != nil {
		return fmt.Sprintf("delivery failed (%s): %s: %v", kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("delivery failed (%s): %s", kind, e.Reason)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// NewRetryableDeliveryError wraps err as a retryable delivery failure.
func NewRetryableDeliveryError(reason string, err error) error {
	return &DeliveryError{Reason: reason, Permanent: false, Err: err}
}

// NewPermanentDeliveryError wraps err as a permanent delivery failure.
func NewPermanentDeliveryError(reason string, err error) error {
	return &DeliveryError{Reason: reason, Permanent: true, Err: err}
}

// IsPermanentDelivery reports whether err is a DeliveryError marked permanent.
func IsPermanentDelivery(err error) bool {
	var de *DeliveryError
	return errors.As(err, &de) && de.Permanent
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsConsistency reports whether err is a ConsistencyError.
func IsConsistency(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}
