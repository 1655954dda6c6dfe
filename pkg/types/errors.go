package types

import "errors"

// Error taxonomy shared by storage, workspace operations and front ends.
var (
	// ErrNotFound is returned when a named workspace or directory is absent
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned for a duplicate workspace or a directory
	// that is already a member of the workspace
	ErrAlreadyExists = errors.New("already exists")
	// ErrStorage wraps I/O, connection and schema failures from SQLite
	ErrStorage = errors.New("storage error")
	// ErrConstraintViolation wraps unique and foreign key violations
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInvalidArgument is returned for empty names, paths or commands
	ErrInvalidArgument = errors.New("invalid argument")
)
