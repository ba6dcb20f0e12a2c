// Package httpapi exposes the development server's REST endpoints. The
// routes, verbs, auth requirements and error bodies follow the contract the
// CLI client consumes.
package httpapi

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/itemdesk/internal/logging"
	"github.com/dmitrijs2005/itemdesk/internal/server/store"
)

type Handler struct {
	store    *store.Store
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
}

func NewHandler(s *store.Store, secret []byte, tokenTTL time.Duration, log logging.Logger) *Handler {
	return &Handler{store: s, secret: secret, tokenTTL: tokenTTL, log: log}
}

// Router builds the full route table under the /api base path.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", h.health).Methods("GET")
	api.HandleFunc("/auth/register", h.register).Methods("POST")
	api.HandleFunc("/auth/login", h.login).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(h.requireUser)
	authed.HandleFunc("/users/me", h.currentUser).Methods("GET")
	authed.HandleFunc("/users/me", h.updateProfile).Methods("PUT")
	authed.HandleFunc("/items/", h.listItems).Methods("GET")
	authed.HandleFunc("/items/", h.createItem).Methods("POST")
	authed.HandleFunc("/items/{id:[0-9]+}", h.getItem).Methods("GET")
	authed.HandleFunc("/items/{id:[0-9]+}", h.updateItem).Methods("PUT")
	authed.HandleFunc("/items/{id:[0-9]+}", h.deleteItem).Methods("DELETE")

	return r
}
