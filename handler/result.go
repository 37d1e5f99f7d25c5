package handler

import (
	"github.com/google/uuid"

	"github.com/jacentio/todos/store"
)

// Status classifies the outcome of a request.
type Status int

const (
	// StatusOK carries a Todo or a list of Todos.
	StatusOK Status = iota
	// StatusCreated carries the stored Todo and a reference to its ID.
	StatusCreated
	// StatusNoContent carries no payload.
	StatusNoContent
	// StatusNotFound means the target identifier does not exist.
	StatusNotFound
	// StatusBadRequest means the payload failed validation; see Problems.
	StatusBadRequest
	// StatusInternal means the request could not be completed for a reason
	// that is not the caller's fault.
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCreated:
		return "created"
	case StatusNoContent:
		return "no content"
	case StatusNotFound:
		return "not found"
	case StatusBadRequest:
		return "bad request"
	case StatusInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Result is the classified outcome of a handler operation.
type Result struct {
	Status Status

	// Todo is set for single-entity successes (get, create, replace).
	Todo *store.Todo

	// Todos is set for list requests. Never nil on StatusOK from List.
	Todos []store.Todo

	// Ref is the identifier of the created Todo (StatusCreated only).
	Ref uuid.UUID

	// Problems lists validation failures (StatusBadRequest only).
	Problems []Problem
}

func ok(t store.Todo) Result {
	return Result{Status: StatusOK, Todo: &t}
}

func created(t store.Todo) Result {
	return Result{Status: StatusCreated, Todo: &t, Ref: t.ID}
}

func status(s Status) Result {
	return Result{Status: s}
}
