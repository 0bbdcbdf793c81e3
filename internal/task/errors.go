package task

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrDuplicateID   = errors.New("task id already exists")
	ErrInvalidBucket = errors.New("invalid bucket")
	ErrValidation    = errors.New("validation failed")
)

// FieldError reports which field failed validation. It matches ErrValidation
// with errors.Is.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

func validation(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

func invalidBucket(v string) error {
	return fmt.Errorf("%w %q", ErrInvalidBucket, v)
}

func NotFound(id ID) error {
	return fmt.Errorf("task %d: %w", id, ErrNotFound)
}

func DuplicateID(id ID) error {
	return fmt.Errorf("task %d: %w", id, ErrDuplicateID)
}
