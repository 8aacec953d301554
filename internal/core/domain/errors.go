package domain

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTitle     = errors.New("invalid task title")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidDueDate   = errors.New("invalid task due date")
	ErrEmptyDescription = errors.New("description is empty")
)

// IsValidationError reports whether err is one of the task payload errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTitle) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPriority) ||
		errors.Is(err, ErrInvalidDueDate)
}
