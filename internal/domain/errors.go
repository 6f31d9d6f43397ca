package domain

import "errors"

// ValidationError marks caller input that was rejected before reaching a store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func ErrValidation(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	// ErrBusy is returned when a sort request arrives while the list is loading.
	ErrBusy = errors.New("list is loading")
	// ErrQueryFailed wraps every store-level failure of a read.
	ErrQueryFailed = errors.New("query failed")
)
