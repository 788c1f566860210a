package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"microarchive/internal/contextutil"
	"microarchive/internal/publish"
	"microarchive/internal/site"
	"microarchive/internal/storage"
)

// PublishHandler handles HTTP requests for publishing archives.
type PublishHandler struct {
	service publish.Service
}

// NewPublishHandler creates a new PublishHandler.
func NewPublishHandler(service publish.Service) *PublishHandler {
	return &PublishHandler{service: service}
}

// ServeHTTP handles HTTP requests for publishing.
//
// Lists the scanned images under the prefix, renders the finding aid, the
// IIIF manifest and the website, and uploads them to the archive's site.
//
// swagger:route POST /api/publish publishArchive
//
// # Publish an archive
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Archive published
//	'400':
//	  description: Invalid request or malformed item identifier
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'404':
//	  description: Unknown site key
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'409':
//	  description: An item identifier is also used as a folder
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *PublishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req publish.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Publish(ctx, req)
	if err != nil {
		handleError(w, ctx, err, "Failed to publish archive")
		return
	}

	writeJSON(w, ctx, res)
}

// SiteHandler serves site lookups.
type SiteHandler struct {
	host         site.Host
	service      publish.Service
	publications storage.PublicationStore
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(host site.Host, service publish.Service, publications storage.PublicationStore) *SiteHandler {
	return &SiteHandler{host: host, service: service, publications: publications}
}

// Get returns the site's id, domain, origin and status.
//
// swagger:route GET /api/sites/{id} getSite
//
// # Look up a site
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Site info
//	'404':
//	  description: Unknown site
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	info, err := h.host.GetSite(ctx, id)
	if err != nil {
		handleError(w, ctx, err, "Failed to load site")
		return
	}
	writeJSON(w, ctx, info)
}

// Metadata returns the stored metadata snapshot of a site.
//
// swagger:route GET /api/sites/{id}/metadata getSiteMetadata
//
// # Stored metadata of a site
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Metadata snapshot
//	'404':
//	  description: Unknown site or nothing published yet
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SiteHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	meta, err := h.service.Info(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, ctx, err, "Failed to load site metadata")
		return
	}
	writeJSON(w, ctx, meta)
}

// Publications lists the publish runs of a site, newest first.
//
// swagger:route GET /api/sites/{id}/publications listPublications
//
// # Publication history of a site
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Publications
//	'404':
//	  description: Unknown site
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SiteHandler) Publications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	info, err := h.host.GetSite(ctx, strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, ctx, err, "Failed to load site")
		return
	}

	pubs, err := h.publications.ListBySite(ctx, info.ID)
	if err != nil {
		handleError(w, ctx, err, "Failed to list publications")
		return
	}
	if pubs == nil {
		pubs = []storage.PublicationRecord{}
	}
	writeJSON(w, ctx, pubs)
}
