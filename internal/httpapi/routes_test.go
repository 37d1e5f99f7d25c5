package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/todos/handler"
	"github.com/jacentio/todos/internal/testutil"
	"github.com/jacentio/todos/internal/wire"
	"github.com/jacentio/todos/store"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	s := store.New(store.DefaultConfig())
	logger := testutil.NewTestLogger(t)
	return NewRouter(handler.New(s, logger), logger, RouterOptions{Sizer: s, RequestTimeout: 5 * time.Second}), s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeTodo(t *testing.T, rec *httptest.ResponseRecorder) wire.Todo {
	t.Helper()
	var todo wire.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo), "body: %s", rec.Body.String())
	return todo
}

// =============================================================================
// Collection
// =============================================================================

func TestGetAll_ReturnsEmptyArrayWhenNoTodos(t *testing.T) {
	r, _ := setupTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/todos", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wire.ContentTypeJSON, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPost_ReturnsCreatedWithGeneratedID(t *testing.T) {
	r, _ := setupTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/todos",
		`{"id":"00000000-0000-0000-0000-000000000000","title":"Test Todo","description":"Test Description","done":false}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	todo := decodeTodo(t, rec)
	assert.NotEqual(t, uuid.Nil, todo.ID)
	assert.Equal(t, "Test Todo", todo.Title)
	assert.Equal(t, "Test Description", todo.Description)
	assert.False(t, todo.Done)
	assert.Equal(t, "/api/todos/"+todo.ID.String(), rec.Header().Get("Location"))
}

func TestPost_IgnoresBodyID(t *testing.T) {
	r, _ := setupTestRouter(t)
	supplied := uuid.New()

	rec := do(t, r, http.MethodPost, "/api/todos", `{"id":"`+supplied.String()+`","title":"x"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEqual(t, supplied, decodeTodo(t, rec).ID)
}

func TestPost_BadRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "empty title", body: `{"title":""}`, wantField: "title"},
		{name: "missing title", body: `{"description":"no title"}`, wantField: "title"},
		{name: "title too long", body: `{"title":"` + strings.Repeat("a", 101) + `"}`, wantField: "title"},
		{name: "description too long", body: `{"title":"a","description":"` + strings.Repeat("d", 1001) + `"}`, wantField: "description"},
		{name: "malformed json", body: `{"title":`, wantField: "body"},
		{name: "wrong type", body: `{"title":42}`, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s := setupTestRouter(t)

			rec := do(t, r, http.MethodPost, "/api/todos", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, wire.ContentTypeProblem, rec.Header().Get("Content-Type"))
			var p wire.Problem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			assert.Contains(t, p.Errors, tt.wantField)
			assert.Zero(t, s.Len(), "invalid payload must not reach the store")
		})
	}
}

// =============================================================================
// Item
// =============================================================================

func TestCrudOperations_WorkTogether(t *testing.T) {
	r, _ := setupTestRouter(t)

	// Create
	createRec := do(t, r, http.MethodPost, "/api/todos", `{"title":"CRUD Test","description":"Testing full CRUD","done":false}`)
	require.Equal(t, http.StatusCreated, createRec.Code)
	created := decodeTodo(t, createRec)
	path := "/api/todos/" + created.ID.String()

	// Get
	getRec := do(t, r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, created, decodeTodo(t, getRec))

	// Update, with a body id that must be ignored
	updateRec := do(t, r, http.MethodPut, path,
		`{"id":"`+uuid.New().String()+`","title":"Updated Title","description":"Testing full CRUD","done":true}`)
	require.Equal(t, http.StatusOK, updateRec.Code)
	updated := decodeTodo(t, updateRec)
	assert.Equal(t, created.ID, updated.ID)

	// Verify the update
	afterUpdate := decodeTodo(t, do(t, r, http.MethodGet, path, ""))
	assert.Equal(t, "Updated Title", afterUpdate.Title)
	assert.True(t, afterUpdate.Done)

	// Delete
	deleteRec := do(t, r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, deleteRec.Code)
	assert.Empty(t, deleteRec.Body.String())

	// Verify the delete
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, path, "").Code)
}

func TestNotFound_ForMissingOrMalformedIDs(t *testing.T) {
	r, s := setupTestRouter(t)
	missing := "/api/todos/" + uuid.New().String()
	body := `{"title":"Non-existent","description":"This doesn't exist"}`

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"get missing", http.MethodGet, missing, ""},
		{"put missing", http.MethodPut, missing, body},
		{"delete missing", http.MethodDelete, missing, ""},
		{"get malformed", http.MethodGet, "/api/todos/not-a-guid", ""},
		{"put malformed", http.MethodPut, "/api/todos/not-a-guid", body},
		{"delete malformed", http.MethodDelete, "/api/todos/not-a-guid", ""},
		{"unknown route", http.MethodGet, "/nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, wire.ContentTypeProblem, rec.Header().Get("Content-Type"))
		})
	}
	assert.Zero(t, s.Len())
}

func TestPut_InvalidPayloadIsBadRequest(t *testing.T) {
	r, _ := setupTestRouter(t)
	created := decodeTodo(t, do(t, r, http.MethodPost, "/api/todos", `{"title":"ok"}`))

	rec := do(t, r, http.MethodPut, "/api/todos/"+created.ID.String(), `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Stored value unchanged
	after := decodeTodo(t, do(t, r, http.MethodGet, "/api/todos/"+created.ID.String(), ""))
	assert.Equal(t, "ok", after.Title)
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := setupTestRouter(t)

	rec := do(t, r, http.MethodPatch, "/api/todos/"+uuid.New().String(), `{"done":true}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// =============================================================================
// Ambient routes
// =============================================================================

func TestHealthz(t *testing.T) {
	r, _ := setupTestRouter(t)
	do(t, r, http.MethodPost, "/api/todos", `{"title":"counted"}`)

	rec := do(t, r, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"Healthy","todos":1}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/todos", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))

	get := do(t, r, http.MethodGet, "/api/todos", "")
	assert.Equal(t, "*", get.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverer_ReturnsProblemOnPanic(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	h := recoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"title":"An error occurred","status":500}`, rec.Body.String())
}
