package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound = errors.New("resource not found")

	// Ingestion errors
	ErrMalformedInput = errors.New("malformed input")
	ErrHeaderNotFound = errors.New("header row not found")
	ErrNoValidColumns = errors.New("no valid columns")

	// Reconciliation errors
	ErrSchemaMismatch = errors.New("schema mismatch")

	// Persistence errors
	ErrStoreFailure = errors.New("dataset store failure")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewMalformedInputError(reason string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedInput, reason, cause)
	}
	return fmt.Errorf("%w: %s", ErrMalformedInput, reason)
}

func NewStoreError(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreFailure, op, cause)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsIngestError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrHeaderNotFound) ||
		errors.Is(err, ErrNoValidColumns)
}

func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}
