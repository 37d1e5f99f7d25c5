package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jacentio/todos/internal/shard"
)

// Store is a concurrency-safe in-memory collection of Todos.
type Store struct {
	config Config
	shards []*stripe

	// newID generates identifiers; replaced in tests to force collisions.
	newID func() uuid.UUID
}

// stripe is one lock-guarded slice of the key space.
type stripe struct {
	mu    sync.RWMutex
	todos map[uuid.UUID]Todo
}

// New creates a new Store instance.
func New(config Config) *Store {
	config.validate()
	shards := make([]*stripe, config.NumShards)
	for i := range shards {
		shards[i] = &stripe{todos: make(map[uuid.UUID]Todo)}
	}
	return &Store{
		config: config,
		shards: shards,
		newID:  uuid.New,
	}
}

// Config returns the effective (validated) configuration.
func (s *Store) Config() Config {
	return s.config
}

// stripeFor returns the stripe that owns id.
func (s *Store) stripeFor(id uuid.UUID) *stripe {
	return s.shards[shard.Index(id, len(s.shards))]
}

// List returns a copy of every Todo currently in the store.
// Order is unspecified. Stripes are visited one at a time, so the result is
// consistent per key but not a single point-in-time view across keys.
func (s *Store) List() []Todo {
	todos := make([]Todo, 0, s.Len())
	for _, st := range s.shards {
		st.mu.RLock()
		for _, t := range st.todos {
			todos = append(todos, t)
		}
		st.mu.RUnlock()
	}
	return todos
}

// Len returns the number of Todos currently in the store.
func (s *Store) Len() int {
	n := 0
	for _, st := range s.shards {
		st.mu.RLock()
		n += len(st.todos)
		st.mu.RUnlock()
	}
	return n
}

// Get returns the Todo stored under id. The boolean is false if there is none.
func (s *Store) Get(id uuid.UUID) (Todo, bool) {
	st := s.stripeFor(id)
	st.mu.RLock()
	defer st.mu.RUnlock()

	t, ok := st.todos[id]
	return t, ok
}

// Create inserts todo and returns the stored value.
//
// If todo has no ID a fresh one is generated. A caller-supplied ID that is
// already in use fails with ErrAlreadyExists; Create never overwrites.
func (s *Store) Create(todo Todo) (Todo, error) {
	if todo.HasID() {
		return s.insert(todo)
	}

	for {
		stored, err := s.insert(todo.WithID(s.newID()))
		if errors.Is(err, ErrAlreadyExists) {
			// Generated id collided with a live key; draw another.
			continue
		}
		return stored, err
	}
}

// insert adds todo under its own ID if that key is free.
func (s *Store) insert(todo Todo) (Todo, error) {
	st := s.stripeFor(todo.ID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.todos[todo.ID]; exists {
		return Todo{}, ErrAlreadyExists
	}
	st.todos[todo.ID] = todo
	return todo, nil
}

// Replace swaps the Todo stored under id for one built from fields.
//
// The stored ID is always id, whatever the caller had in mind. The existence
// check and the write happen under the same stripe lock, so a concurrent
// Delete either wins (and Replace reports ErrNotFound) or loses (and the
// replacement is deleted after it lands). A deleted Todo is never resurrected.
func (s *Store) Replace(id uuid.UUID, fields Fields) (Todo, error) {
	st := s.stripeFor(id)
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.todos[id]; !exists {
		return Todo{}, ErrNotFound
	}
	updated := Todo{ID: id, Fields: fields}
	st.todos[id] = updated
	return updated, nil
}

// Delete removes the Todo stored under id.
// It reports whether anything was removed; deleting a missing id is not an error.
func (s *Store) Delete(id uuid.UUID) bool {
	st := s.stripeFor(id)
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.todos[id]; !exists {
		return false
	}
	delete(st.todos, id)
	return true
}
