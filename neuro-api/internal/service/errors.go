package service

import "errors"

var (
	ErrEmptyMessage = errors.New("no message provided")
	ErrNotFound     = errors.New("not found")
	ErrEmailExists  = errors.New("email already exists")
)

// ValidationError reports a rejected request. Message is safe to show
// to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
