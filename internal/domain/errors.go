package domain

import (
	"errors"
	"fmt"
)

// Error kinds. NotFound also covers a caller that lacks the relationship
// needed to see or act on an entity, so existence is not leaked.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")

	// ErrConcurrentModification is returned by stores when a versioned update
	// loses against a concurrent writer.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// Error is a classified failure with a caller-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}
