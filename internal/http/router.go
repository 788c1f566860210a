package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"microarchive/internal/handlers"
	"microarchive/internal/iiif"
	"microarchive/internal/publish"
	"microarchive/internal/site"
	"microarchive/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	PublishService publish.Service
	Host           site.Host
	Publications   storage.PublicationStore
	// Manifest configures preview manifests; BaseURL is where previews claim to live.
	Manifest     iiif.Config
	HealthChecks map[string]handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	siteHandler := handlers.NewSiteHandler(deps.Host, deps.PublishService, deps.Publications)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.HealthChecks))
		r.Method(http.MethodPost, "/preview/ead", handlers.NewPreviewEADHandler())
		r.Method(http.MethodPost, "/preview/manifest", handlers.NewPreviewManifestHandler(deps.Manifest))
		r.Method(http.MethodPost, "/publish", handlers.NewPublishHandler(deps.PublishService))
		r.Route("/sites/{id}", func(r chi.Router) {
			r.Get("/", siteHandler.Get)
			r.Get("/metadata", siteHandler.Metadata)
			r.Get("/publications", siteHandler.Publications)
		})
	})

	return r
}
