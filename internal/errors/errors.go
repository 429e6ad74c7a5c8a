package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth client
var (
	// Session errors
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrAccessDenied = errors.New("access denied")

	// Configuration errors
	ErrEmptyFieldName = errors.New("field name must not be empty")
	ErrNilCallback    = errors.New("callback must not be nil")
	ErrRoleRequired   = errors.New("at least one role is required")

	// Storage errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join combines errs, dropping nils
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
