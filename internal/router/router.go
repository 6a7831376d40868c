// Package router sets up all HTTP routes and middleware chains for the
// preview server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/models"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", api.Home())

		// Entry ids may contain slashes, hence the wildcard.
		r.Get("/posts", api.Collection(models.KindPost))
		r.Get("/posts/*", api.Entry(models.KindPost))
		r.Get("/tabs", api.Collection(models.KindTab))
		r.Get("/tabs/*", api.Entry(models.KindTab))
		r.Get("/music", api.Collection(models.KindMusic))
		r.Get("/music/*", api.Entry(models.KindMusic))

		r.Get("/tags", api.Tags())
		r.Get("/tags/{tag}", api.Tag())
		r.Get("/categories", api.Categories())
		r.Get("/categories/{category}", api.Category())
		r.Get("/series", api.SeriesList())
		r.Get("/series/{id}", api.Series())
		r.Get("/featured-series", api.FeaturedSeries())
		r.Get("/artists", api.Artists())
		r.Get("/music-types", api.MusicTypes())
		r.Get("/stats", api.Stats())

		r.Get("/archive", api.Archive())
		r.Get("/routes", api.Routes())
	})

	r.NotFound(notFoundHandler)
	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not found"}`))
}
