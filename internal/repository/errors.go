package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidReference is returned when a write points at a user or trip that does not exist.
	ErrInvalidReference = errors.New("referenced entity does not exist")

	// ErrPreconditionFailed is returned when a conditional write matched no row
	// because the row no longer satisfies the condition.
	ErrPreconditionFailed = errors.New("write precondition failed")
)
