package handlers

import (
	"encoding/json"
	"net/http"

	"microarchive/internal/archive"
	"microarchive/internal/contextutil"
	"microarchive/internal/ead"
	"microarchive/internal/iiif"
)

// maxBodyBytes bounds request bodies carrying archives.
const maxBodyBytes = 10 << 20

// decodeArchive reads an archive from the request body, writing the error
// response itself when it fails.
func decodeArchive(w http.ResponseWriter, r *http.Request) (archive.Archive, bool) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return archive.Archive{}, false
	}

	var a archive.Archive
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&a); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return archive.Archive{}, false
	}
	return a, true
}

// PreviewEADHandler renders a posted archive as EAD XML.
type PreviewEADHandler struct{}

// NewPreviewEADHandler creates a new PreviewEADHandler.
func NewPreviewEADHandler() *PreviewEADHandler {
	return &PreviewEADHandler{}
}

// ServeHTTP handles HTTP requests for EAD previews.
//
// swagger:route POST /api/preview/ead previewEAD
//
// # Render an archive as EAD
//
// ---
// consumes:
// - application/json
// produces:
// - text/xml
// responses:
//
//	'200':
//	  description: EAD document
//	'400':
//	  description: Invalid body or malformed item identifier
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'409':
//	  description: An item identifier is also used as a folder
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *PreviewEADHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a, ok := decodeArchive(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	renderer := &ead.Renderer{Logger: contextutil.LoggerFromContext(ctx)}
	out, err := renderer.RenderArchive(a)
	if err != nil {
		handleError(w, ctx, err, "Failed to render EAD")
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// PreviewManifestHandler renders a posted archive as a IIIF manifest.
type PreviewManifestHandler struct {
	cfg iiif.Config
}

// NewPreviewManifestHandler creates a new PreviewManifestHandler. The
// manifest name defaults to the archive slug.
func NewPreviewManifestHandler(cfg iiif.Config) *PreviewManifestHandler {
	return &PreviewManifestHandler{cfg: cfg}
}

// ServeHTTP handles HTTP requests for manifest previews.
//
// swagger:route POST /api/preview/manifest previewManifest
//
// # Render an archive as a IIIF Presentation 3 manifest
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: IIIF manifest
//	'400':
//	  description: Invalid body or malformed item identifier
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'409':
//	  description: An item identifier is also used as a folder
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *PreviewManifestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a, ok := decodeArchive(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	cfg := h.cfg
	if cfg.Name == "" {
		cfg.Name = a.Slug()
	}
	out, err := iiif.NewRenderer(cfg).RenderArchive(a)
	if err != nil {
		handleError(w, ctx, err, "Failed to render manifest")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(out))
}
