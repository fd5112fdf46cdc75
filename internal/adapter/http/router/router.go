package router

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouteRegistrar is implemented by every controller; the router only wires,
// controllers own their paths.
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router, authMiddleware mux.MiddlewareFunc)
}

func New(authMiddleware mux.MiddlewareFunc, registrars ...RouteRegistrar) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(r, authMiddleware)
		}
	}

	return r
}
