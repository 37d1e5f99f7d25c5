// Package wire holds the JSON representation of Todos and the mapping from
// handler results onto HTTP status codes. Both the HTTP server and the Lambda
// gateway encode through it so their responses are byte-for-byte alike.
package wire

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jacentio/todos/handler"
	"github.com/jacentio/todos/store"
)

// ContentTypeJSON is the media type of Todo payloads.
const ContentTypeJSON = "application/json"

// ContentTypeProblem is the media type of error payloads (RFC 7807).
const ContentTypeProblem = "application/problem+json"

// CollectionPath is the route of the Todo collection.
const CollectionPath = "/api/todos"

// MaxBodyBytes bounds request bodies. A maximal valid payload is well under this.
const MaxBodyBytes = 64 << 10

// Request is the body of create and replace requests.
// An id in the body is accepted but ignored.
type Request struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// Fields converts the request into store fields.
func (r Request) Fields() store.Fields {
	return store.Fields{
		Title:       r.Title,
		Description: r.Description,
		Done:        r.Done,
	}
}

// Todo is the response representation of a stored Todo.
type Todo struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
}

// FromStore converts a stored Todo into its wire form.
func FromStore(t store.Todo) Todo {
	return Todo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Done:        t.Done,
	}
}

// Problem is an RFC 7807 problem details body.
type Problem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// Health is the body of health check responses.
type Health struct {
	Status string `json:"status"`
	Todos  *int   `json:"todos,omitempty"`
}

// Location returns the path of the Todo with the given id.
func Location(id uuid.UUID) string {
	return CollectionPath + "/" + id.String()
}

// ParseID parses a path segment as a Todo id.
// Anything that is not a UUID names no Todo, so callers treat failure as not found.
func ParseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// DecodeRequest reads a create/replace body.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(io.LimitReader(r, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decode request body: %w", err)
	}
	return req, nil
}

// StatusCode maps a handler status onto an HTTP status code.
func StatusCode(s handler.Status) int {
	switch s {
	case handler.StatusOK:
		return http.StatusOK
	case handler.StatusCreated:
		return http.StatusCreated
	case handler.StatusNoContent:
		return http.StatusNoContent
	case handler.StatusNotFound:
		return http.StatusNotFound
	case handler.StatusBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Response is an encoded result, ready to be written by any transport.
type Response struct {
	StatusCode  int
	ContentType string
	Location    string
	Body        []byte
}

// Encode renders a handler result.
func Encode(res handler.Result) Response {
	code := StatusCode(res.Status)

	switch res.Status {
	case handler.StatusOK, handler.StatusCreated:
		var payload any
		if res.Todo != nil {
			payload = FromStore(*res.Todo)
		} else {
			todos := make([]Todo, len(res.Todos))
			for i, t := range res.Todos {
				todos[i] = FromStore(t)
			}
			payload = todos
		}
		out := jsonResponse(code, ContentTypeJSON, payload)
		if res.Status == handler.StatusCreated {
			out.Location = Location(res.Ref)
		}
		return out

	case handler.StatusNoContent:
		return Response{StatusCode: code}

	case handler.StatusBadRequest:
		return EncodeProblem(code, "One or more validation errors occurred.", res.Problems)

	case handler.StatusNotFound:
		return EncodeProblem(code, "Not Found", nil)

	default:
		return EncodeProblem(code, "An error occurred", nil)
	}
}

// EncodeProblem renders a problem details body.
func EncodeProblem(code int, title string, problems []handler.Problem) Response {
	p := Problem{Title: title, Status: code}
	if len(problems) > 0 {
		p.Errors = make(map[string][]string)
		for _, pr := range problems {
			p.Errors[pr.Field] = append(p.Errors[pr.Field], pr.Message)
		}
	}
	return jsonResponse(code, ContentTypeProblem, p)
}

func jsonResponse(code int, contentType string, payload any) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		// Only plain structs, strings and bools reach here.
		body = []byte(`{"title":"An error occurred","status":500}`)
		return Response{StatusCode: http.StatusInternalServerError, ContentType: ContentTypeProblem, Body: body}
	}
	return Response{StatusCode: code, ContentType: contentType, Body: body}
}

// EncodeHealth renders a healthy status. todos is the live count, omitted when nil.
func EncodeHealth(todos *int) Response {
	return jsonResponse(http.StatusOK, ContentTypeJSON, Health{Status: "Healthy", Todos: todos})
}

// EncodeBadBody renders a body that could not be decoded at all.
func EncodeBadBody(err error) Response {
	return EncodeProblem(http.StatusBadRequest, "One or more validation errors occurred.", []handler.Problem{
		{Field: "body", Message: err.Error()},
	})
}
