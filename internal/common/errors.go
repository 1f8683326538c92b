// Package common defines sentinel errors shared by the store, normalization
// and synchronization layers. Callers should match them with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors are caught before any remote write and are not retried.
	ErrValidation     = errors.New("validation error")
	ErrDuplicate      = fmt.Errorf("%w: a record with this email or phone already exists", ErrValidation)
	ErrInvalidInstant = fmt.Errorf("%w: invalid instant", ErrValidation)

	// Normalization errors come from the geocoding collaborator.
	ErrNormalization    = errors.New("normalization error")
	ErrLocationNotFound = fmt.Errorf("%w: location not found", ErrNormalization)
	ErrLookupFailure    = fmt.Errorf("%w: lookup failure", ErrNormalization)

	// Remote store errors. A write error means the optimistic change was rolled back.
	ErrRemoteWrite = errors.New("remote write rejected")
	ErrRemoteRead  = errors.New("remote read failed")

	// ErrCanceled is returned when the operator declines a confirmation.
	ErrCanceled = errors.New("canceled")
)
