package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the full route table. Item and current-user routes sit
// behind the bearer-token middleware; auth entry points do not.
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware(h.log))

	r.HandleFunc("/login", h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/signup", h.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/google/login", h.handleOAuthLogin).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	authed := r.NewRoute().Subrouter()
	authed.Use(authMiddleware(h.jwtSecret))
	authed.HandleFunc("/user", h.handleCurrentUser).Methods(http.MethodGet)
	authed.HandleFunc("/items", h.handleListItems).Methods(http.MethodGet)
	authed.HandleFunc("/items", h.handleCreateItem).Methods(http.MethodPost)
	authed.HandleFunc("/items/{id}", h.handleUpdateItem).Methods(http.MethodPut)
	authed.HandleFunc("/items/{id}", h.handleDeleteItem).Methods(http.MethodDelete)

	return r
}
