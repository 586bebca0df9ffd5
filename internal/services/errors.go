package services

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when caller input is rejected
	ErrValidation = errors.New("invalid input")
)

// InputError is a validation failure whose message is safe to show to clients
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

// Unwrap lets errors.Is match ErrValidation
func (e *InputError) Unwrap() error {
	return ErrValidation
}

func invalid(msg string) error {
	return &InputError{Msg: msg}
}
