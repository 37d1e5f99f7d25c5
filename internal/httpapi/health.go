package httpapi

import (
	"net/http"

	"github.com/jacentio/todos/internal/wire"
)

func healthHandler(sizer Sizer) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var todos *int
		if sizer != nil {
			n := sizer.Len()
			todos = &n
		}
		write(w, wire.EncodeHealth(todos))
	}
}
