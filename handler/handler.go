// Package handler translates inbound Todo requests into store calls and
// classifies store outcomes into result categories.
//
// Handlers never return errors: every outcome, including faults, is reported
// as a [Result] with a [Status]. Mapping a Status onto a wire protocol is the
// transport's job.
package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jacentio/todos/store"
)

// Store is the subset of *store.Store the handler depends on.
type Store interface {
	List() []store.Todo
	Get(id uuid.UUID) (store.Todo, bool)
	Create(todo store.Todo) (store.Todo, error)
	Replace(id uuid.UUID, fields store.Fields) (store.Todo, error)
	Delete(id uuid.UUID) bool
}

// Handler serves Todo requests against a Store.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// New creates a new Handler.
func New(s Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger,
	}
}

// List returns every Todo. It always succeeds, even when the store is empty.
func (h *Handler) List(ctx context.Context) Result {
	todos := h.store.List()
	if todos == nil {
		todos = []store.Todo{}
	}
	return Result{Status: StatusOK, Todos: todos}
}

// Get returns the Todo with the given id, or StatusNotFound.
func (h *Handler) Get(ctx context.Context, id uuid.UUID) Result {
	todo, found := h.store.Get(id)
	if !found {
		return status(StatusNotFound)
	}
	return ok(todo)
}

// Create validates fields and stores a new Todo with a generated id.
func (h *Handler) Create(ctx context.Context, fields store.Fields) Result {
	if err := Check(fields); err != nil {
		return h.invalid(ctx, err)
	}

	todo, err := h.store.Create(store.Todo{Fields: fields})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			h.logger.ErrorContext(ctx, "create conflicted on generated id",
				"error", err,
			)
		} else {
			h.logger.ErrorContext(ctx, "create failed",
				"error", err,
			)
		}
		return status(StatusInternal)
	}

	// The todo is visible to other clients as soon as it is stored, so it
	// may already be replaced or deleted; only the returned value is checked.
	if !todo.HasID() {
		h.logger.ErrorContext(ctx, "store invariant violated: created todo has no id")
		return status(StatusInternal)
	}

	h.logger.DebugContext(ctx, "todo created", "todoID", todo.ID)
	return created(todo)
}

// Replace validates fields and substitutes the Todo stored under id.
// Any id the caller put in the payload is irrelevant; the stored id is kept.
func (h *Handler) Replace(ctx context.Context, id uuid.UUID, fields store.Fields) Result {
	if err := Check(fields); err != nil {
		return h.invalid(ctx, err)
	}

	todo, err := h.store.Replace(id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return status(StatusNotFound)
		}
		h.logger.ErrorContext(ctx, "replace failed",
			"todoID", id,
			"error", err,
		)
		return status(StatusInternal)
	}

	if todo.ID != id {
		h.logger.ErrorContext(ctx, "store invariant violated: replace changed id",
			"todoID", id,
			"storedID", todo.ID,
		)
		return status(StatusInternal)
	}

	h.logger.DebugContext(ctx, "todo replaced", "todoID", id)
	return ok(todo)
}

// Delete removes the Todo stored under id.
func (h *Handler) Delete(ctx context.Context, id uuid.UUID) Result {
	if !h.store.Delete(id) {
		return status(StatusNotFound)
	}
	h.logger.DebugContext(ctx, "todo deleted", "todoID", id)
	return status(StatusNoContent)
}

// invalid classifies a rejected payload.
func (h *Handler) invalid(ctx context.Context, err error) Result {
	h.logger.DebugContext(ctx, "payload rejected", "error", err)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		return status(StatusBadRequest)
	}
	return Result{Status: StatusBadRequest, Problems: verr.Problems}
}
