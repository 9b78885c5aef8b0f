package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hangar-service/pkg/logger"
)

type ctxKey struct{}

// NewRouter mounts the hangar API. metricsHandler is served on /metrics when set.
func NewRouter(h *Handler, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondData(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/flights/search", h.SearchFlights)
		r.Post("/aircraft/{tail}/photos/refresh", h.RefreshPhotos)

		r.Route("/hangar/flights", func(r chi.Router) {
			r.Use(requireUser(h.logger))
			r.Get("/", h.ListFlights)
			r.Post("/", h.AddFlight)
			r.Post("/import", h.ImportFlight)
			r.Get("/{id}", h.GetFlight)
			r.Patch("/{id}", h.UpdateFlight)
			r.Delete("/{id}", h.DeleteFlight)
		})
	})
	return r
}

// requireUser rejects requests without a user id and stores it on the context.
func requireUser(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if id == "" {
				respondError(w, log, http.StatusUnauthorized, "unauthorized", "Missing user id.")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		})
	}
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
