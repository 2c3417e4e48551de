// Package admin serves the read-only admin API of the proxy.
package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/always-cache/restguard/audit"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

type countResponse struct {
	Count int `json:"count"`
}

type api struct {
	store audit.Store
	log   zerolog.Logger
}

// NewRouter returns the admin routes. Attempt routes answer 404 when store is nil.
func NewRouter(store audit.Store, logger zerolog.Logger) http.Handler {
	a := &api{store: store, log: logger.With().Str("component", "admin").Logger()}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Route("/attempts", func(r chi.Router) {
		r.Use(a.requireStore)
		r.Get("/", a.recent)
		r.Get("/count", a.count)
	})
	return r
}

func (a *api) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.store == nil {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *api) recent(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	attempts, err := a.store.Recent(limit)
	if err != nil {
		a.log.Error().Err(err).Msg("Could not read attempts")
		http.Error(w, "could not read attempts", http.StatusInternalServerError)
		return
	}
	if attempts == nil {
		attempts = []audit.Attempt{}
	}
	a.writeJSON(w, attempts)
}

func (a *api) count(w http.ResponseWriter, r *http.Request) {
	n, err := a.store.Count()
	if err != nil {
		a.log.Error().Err(err).Msg("Could not count attempts")
		http.Error(w, "could not count attempts", http.StatusInternalServerError)
		return
	}
	a.writeJSON(w, countResponse{Count: n})
}

func (a *api) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Warn().Err(err).Msg("Could not write response")
	}
}
