// Package httpapi exposes the Todo handler over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jacentio/todos/handler"
	"github.com/jacentio/todos/internal/wire"
)

// Sizer reports how many Todos are stored. Used by the health endpoint.
type Sizer interface {
	Len() int
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// RequestTimeout bounds each request. Zero disables the timeout.
	RequestTimeout time.Duration

	// Sizer, if set, adds the stored Todo count to health responses.
	Sizer Sizer
}

// NewRouter builds the HTTP handler for the Todo API.
func NewRouter(h *handler.Handler, logger *slog.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(logger),
		recoverer(logger),
		allowAllCORS,
	)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		write(w, wire.EncodeProblem(http.StatusNotFound, "Not Found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		write(w, wire.EncodeProblem(http.StatusMethodNotAllowed, "Method Not Allowed", nil))
	})

	r.Get("/healthz", healthHandler(opts.Sizer))

	todos := &todoRoutes{handler: h}
	r.Route(wire.CollectionPath, func(r chi.Router) {
		r.Get("/", todos.list)
		r.Post("/", todos.create)
		r.Get("/{id}", todos.get)
		r.Put("/{id}", todos.replace)
		r.Delete("/{id}", todos.delete)
	})

	return r
}

// write sends an encoded response.
func write(w http.ResponseWriter, res wire.Response) {
	if res.ContentType != "" {
		w.Header().Set("Content-Type", res.ContentType)
	}
	if res.Location != "" {
		w.Header().Set("Location", res.Location)
	}
	w.WriteHeader(res.StatusCode)
	if len(res.Body) > 0 {
		_, _ = w.Write(res.Body)
	}
}
