package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/gorilla/mux"
)

// NewRouter mounts the auth endpoints at the root and again under /api.
func NewRouter(h *Handler, m *Metrics, l logging.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(recoverer(l), instrument(l, m))

	for _, sub := range []*mux.Router{r.PathPrefix("/api").Subrouter(), r} {
		sub.HandleFunc("/register", h.Register).Methods(http.MethodPost)
		sub.HandleFunc("/login", h.Login).Methods(http.MethodPost)
		sub.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
		sub.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	}

	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	return r
}
