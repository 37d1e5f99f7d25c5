package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jacentio/todos/handler"
	"github.com/jacentio/todos/internal/wire"
)

type todoRoutes struct {
	handler *handler.Handler
}

func (t *todoRoutes) list(w http.ResponseWriter, r *http.Request) {
	write(w, wire.Encode(t.handler.List(r.Context())))
}

func (t *todoRoutes) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		write(w, wire.Encode(handler.Result{Status: handler.StatusNotFound}))
		return
	}
	write(w, wire.Encode(t.handler.Get(r.Context(), id)))
}

func (t *todoRoutes) create(w http.ResponseWriter, r *http.Request) {
	req, err := wire.DecodeRequest(r.Body)
	if err != nil {
		write(w, wire.EncodeBadBody(err))
		return
	}
	write(w, wire.Encode(t.handler.Create(r.Context(), req.Fields())))
}

func (t *todoRoutes) replace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		write(w, wire.Encode(handler.Result{Status: handler.StatusNotFound}))
		return
	}
	req, err := wire.DecodeRequest(r.Body)
	if err != nil {
		write(w, wire.EncodeBadBody(err))
		return
	}
	write(w, wire.Encode(t.handler.Replace(r.Context(), id, req.Fields())))
}

func (t *todoRoutes) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		write(w, wire.Encode(handler.Result{Status: handler.StatusNotFound}))
		return
	}
	write(w, wire.Encode(t.handler.Delete(r.Context(), id)))
}

// pathID extracts the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, bool) {
	return wire.ParseID(chi.URLParam(r, "id"))
}
