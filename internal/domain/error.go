package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTrainingNotFound   = errors.New("training not found")
	ErrEmailAlreadyExists = errors.New("user email already exists")
	ErrInvalidArgument    = errors.New("invalid argument")

	// Infra-level errors surfaced through repositories
	ErrInvalidExecContext = errors.New("invalid execution context for query")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
