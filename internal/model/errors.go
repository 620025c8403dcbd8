package model

import "errors"

// Error taxonomy. Every failure leaving the service layer wraps exactly one
// of these; the HTTP layer maps them to status codes.
var (
	// ErrBadRequest covers malformed input, including a missing or
	// unparseable delta timestamp.
	ErrBadRequest = errors.New("bad request")

	// ErrConflict signals a stale or out-of-order delta. This is an expected
	// outcome under at-least-once delivery, not a bug.
	ErrConflict = errors.New("stale delta")

	// ErrNotFound signals a read of an absent record.
	ErrNotFound = errors.New("company exemptions not found")

	// ErrServiceUnavailable signals an unreachable or erroring store or
	// downstream notifier. Callers retry the whole request.
	ErrServiceUnavailable = errors.New("service unavailable")
)
