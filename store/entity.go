package store

import "github.com/google/uuid"

// Fields holds the caller-controlled attributes of a Todo.
type Fields struct {
	// Title is required, 1-100 characters.
	Title string

	// Description is optional, up to 1000 characters.
	Description string

	// Done is the completion flag.
	Done bool
}

// Todo is the unit of storage.
//
// Values are snapshots: the store hands out copies and replaces whole values,
// so a Todo returned by the store never changes underneath its holder.
type Todo struct {
	// ID is assigned by the store when the caller leaves it as uuid.Nil.
	ID uuid.UUID

	Fields
}

// HasID reports whether the Todo carries a non-empty identifier.
func (t Todo) HasID() bool {
	return t.ID != uuid.Nil
}

// WithID returns a copy of t stamped with id.
func (t Todo) WithID(id uuid.UUID) Todo {
	t.ID = id
	return t
}
