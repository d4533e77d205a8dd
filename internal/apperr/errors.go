package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a state or claim conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrProvider indicates a geo provider failure or timeout.
// Recoverable: callers degrade instead of aborting.
var ErrProvider = errors.New("provider unavailable")
