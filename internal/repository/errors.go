package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist. Callers
// react to it differently than to transport or database failures, so it is
// a distinct sentinel rather than a wrapped driver error.
var ErrNotFound = errors.New("record not found")
