package store

import "errors"

var (
	// ErrNotFound is returned when replacing an entity that doesn't exist.
	ErrNotFound = errors.New("todos: entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity with an occupied ID.
	ErrAlreadyExists = errors.New("todos: entity already exists")
)
