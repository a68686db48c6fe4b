package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateAccount = errors.New("account already exists")
	ErrAuthFailure      = errors.New("invalid credentials")
	ErrValidation       = errors.New("validation failed")
	ErrStoreFault       = errors.New("store fault")

	ErrUnknownEmail      = fmt.Errorf("%w: %w", ErrAuthFailure, ErrNotFound)
	ErrInvalidCredential = fmt.Errorf("%w: credential mismatch", ErrAuthFailure)
	ErrInvalidTransition = fmt.Errorf("%w: status cannot move backwards", ErrValidation)
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreFault wraps a persistence failure with the operation that hit it.
type StoreFault struct {
	Op  string
	Err error
}

func (e *StoreFault) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreFault) Unwrap() error { return e.Err }

func (e *StoreFault) Is(target error) bool {
	return target == ErrStoreFault
}
