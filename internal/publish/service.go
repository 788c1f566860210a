// Package publish turns a storage prefix of scanned images into a hosted
// website with an EAD finding aid and a IIIF manifest.
package publish

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks -mock_names=Service=MockService microarchive/internal/publish Service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"microarchive/internal/archive"
	"microarchive/internal/contextutil"
	"microarchive/internal/ead"
	"microarchive/internal/hierarchy"
	"microarchive/internal/iiif"
	"microarchive/internal/site"
	"microarchive/internal/storage"
	"microarchive/internal/website"
)

// Snapshot keys recording where a site's images came from.
const (
	KeyPrefix = "prefix"
	KeyFormat = "format"
)

// Request describes one publish run. Data holds snapshot keys as produced
// by archive.Archive.ToData; Title overrides the snapshot title.
type Request struct {
	Prefix      string         `json:"prefix"`
	Title       string         `json:"title"`
	SiteKey     string         `json:"site_key"`
	ImageFormat string         `json:"image_format"`
	Data        map[string]any `json:"data"`
	Wait        bool           `json:"wait"`
	// Refresh drops a cached listing of the prefix before listing it.
	Refresh bool `json:"refresh"`
}

// Result reports where a published archive can be found.
type Result struct {
	Site        site.Info `json:"site"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	EADURL      string    `json:"ead_url"`
	ManifestURL string    `json:"manifest_url"`
	ItemCount   int       `json:"item_count"`
}

// Service publishes archives.
type Service interface {
	// Publish renders and uploads the archive, creating its site when no
	// site key is given.
	Publish(ctx context.Context, req Request) (Result, error)
	// RenderEAD returns the finding aid without publishing anything.
	RenderEAD(ctx context.Context, req Request) (string, error)
	// Info returns the stored snapshot of a site.
	Info(ctx context.Context, siteKey string) (map[string]any, error)
}

// Config holds the defaults of a publish run.
type Config struct {
	// Prefix is used when neither the request nor the stored snapshot
	// names one.
	Prefix      string
	ImageFormat string
	// Manifest carries the IIIF image service and canvas settings.
	// Per-site fields are filled in for every run.
	Manifest    iiif.Config
	PollStep    time.Duration
	PollTimeout time.Duration
}

// service implements Service.
type service struct {
	store        storage.ObjectStore
	host         site.Host
	publications storage.PublicationStore
	cfg          Config
	now          func() time.Time
}

// NewService creates a new Service. publications may be nil.
func NewService(store storage.ObjectStore, host site.Host, publications storage.PublicationStore, cfg Config) Service {
	if cfg.ImageFormat == "" {
		cfg.ImageFormat = iiif.DefaultImageFormat
	}
	return &service{
		store:        store,
		host:         host,
		publications: publications,
		cfg:          cfg,
		now:          time.Now,
	}
}

// invalidator is implemented by stores that cache listings.
type invalidator interface {
	Invalidate(prefix string)
}

// prepared is an archive ready for rendering.
type prepared struct {
	archive archive.Archive
	roots   []hierarchy.Node
	prefix  string
	format  string
}

func (s *service) Publish(ctx context.Context, req Request) (Result, error) {
	logger := getLogger(ctx)

	p, err := s.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	name := p.archive.Slug()

	info, err := s.host.CreateOrUpdateSite(ctx, name, req.SiteKey)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create site", "name", name, "error", err)
		return Result{}, WrapError(err, "failed to create site")
	}
	baseURL := "https://" + info.Domain
	res := Result{
		Name:        name,
		URL:         baseURL,
		EADURL:      fmt.Sprintf("%s/%s.xml", baseURL, name),
		ManifestURL: fmt.Sprintf("%s/%s.json", baseURL, name),
		ItemCount:   len(p.archive.Items),
	}

	eadRenderer := &ead.Renderer{URL: res.EADURL, Now: s.now, Logger: logger}
	eadXML, err := eadRenderer.Render(p.archive, p.roots)
	if err != nil {
		return Result{}, WrapError(err, "failed to render EAD")
	}

	manifestCfg := s.cfg.Manifest
	manifestCfg.BaseURL = baseURL
	manifestCfg.Name = name
	manifestCfg.Prefix = p.prefix
	manifestCfg.ImageFormat = p.format
	manifest, err := iiif.NewRenderer(manifestCfg).Render(p.archive, p.roots)
	if err != nil {
		return Result{}, WrapError(err, "failed to render manifest")
	}

	index, err := website.Render(name, info.ID, p.archive, p.roots)
	if err != nil {
		return Result{}, WrapError(err, "failed to render website")
	}

	meta := p.archive.ToData()
	meta[KeyPrefix] = p.prefix
	meta[KeyFormat] = p.format
	files := storage.SiteFiles{Index: index, EAD: eadXML, Manifest: manifest}
	if err := s.store.Upload(ctx, name, info.Origin, files, meta); err != nil {
		logger.ErrorContext(ctx, "failed to upload site", "origin", info.Origin, "error", err)
		return Result{}, WrapError(err, "failed to upload site")
	}
	logger.InfoContext(ctx, "uploaded site", "site_id", info.ID, "origin", info.Origin, "items", res.ItemCount)

	if req.Wait {
		info, err = site.WaitDeployed(ctx, s.host, info.ID, s.cfg.PollStep, s.cfg.PollTimeout)
		if err != nil {
			return Result{}, WrapError(err, "failed waiting for site")
		}
	}
	res.Site = info

	if s.publications != nil {
		pub := &storage.PublicationRecord{
			SiteID:    info.ID,
			Prefix:    p.prefix,
			Title:     p.archive.Identity.Title,
			ItemCount: res.ItemCount,
		}
		if err := s.publications.Record(ctx, pub); err != nil {
			logger.WarnContext(ctx, "failed to record publication", "site_id", info.ID, "error", err)
		}
	}

	logger.InfoContext(ctx, "published archive", "site_id", info.ID, "url", res.URL, "status", info.Status)
	return res, nil
}

func (s *service) RenderEAD(ctx context.Context, req Request) (string, error) {
	p, err := s.prepare(ctx, req)
	if err != nil {
		return "", err
	}
	out, err := (&ead.Renderer{Now: s.now, Logger: getLogger(ctx)}).Render(p.archive, p.roots)
	if err != nil {
		return "", WrapError(err, "failed to render EAD")
	}
	return out, nil
}

func (s *service) Info(ctx context.Context, siteKey string) (map[string]any, error) {
	if strings.TrimSpace(siteKey) == "" {
		return nil, &ValidationError{Field: "site_key", Message: "cannot be empty"}
	}
	info, err := s.host.GetSite(ctx, siteKey)
	if err != nil {
		return nil, WrapError(err, "failed to load site")
	}
	meta, err := s.store.GetMetadata(ctx, info.Origin)
	if err != nil {
		return nil, WrapError(err, "failed to load site metadata")
	}
	return meta, nil
}

// prepare merges stored, requested and default metadata, lists the items
// and builds the hierarchy.
func (s *service) prepare(ctx context.Context, req Request) (prepared, error) {
	logger := getLogger(ctx)

	data := map[string]any{
		archive.KeyDateDesc: s.now().Format(archive.DateLayout),
	}
	prefix, format := req.Prefix, req.ImageFormat

	if req.SiteKey != "" {
		stored, err := s.Info(ctx, req.SiteKey)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			logger.WarnContext(ctx, "no stored metadata for site", "site_key", req.SiteKey)
		case err != nil:
			return prepared{}, err
		default:
			maps.Copy(data, stored)
			if prefix == "" {
				prefix, _ = stored[KeyPrefix].(string)
			}
			if format == "" {
				format, _ = stored[KeyFormat].(string)
			}
		}
	}
	maps.Copy(data, req.Data)
	if req.Title != "" {
		data[archive.KeyTitle] = req.Title
	}
	if prefix == "" {
		prefix = s.cfg.Prefix
	}
	if format == "" {
		format = s.cfg.ImageFormat
	}

	if title, _ := data[archive.KeyTitle].(string); strings.TrimSpace(title) == "" {
		return prepared{}, &ValidationError{Field: "title", Message: "cannot be empty"}
	}

	if req.Refresh {
		if c, ok := s.store.(invalidator); ok {
			c.Invalidate(prefix)
			logger.DebugContext(ctx, "listing cache invalidated", "prefix", prefix)
		}
	}
	items, err := s.store.ListItems(ctx, prefix)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list items", "prefix", prefix, "error", err)
		return prepared{}, WrapError(err, "failed to list items")
	}

	a, err := archive.FromData(data, items)
	if err != nil {
		return prepared{}, &ValidationError{Field: "data", Message: err.Error()}
	}
	if a.Slug() == "" {
		return prepared{}, &ValidationError{Field: "title", Message: "must contain letters or digits"}
	}

	roots, err := hierarchy.Build(a.Items)
	if err != nil {
		logger.WarnContext(ctx, "invalid item identifiers", "prefix", prefix, "error", err)
		return prepared{}, WrapError(err, "failed to build hierarchy")
	}

	logger.InfoContext(ctx, "prepared archive", "prefix", prefix, "items", hierarchy.CountLeaves(roots),
		"roots", len(roots), "leaf_folders", len(hierarchy.LeafDirectories(roots)))
	return prepared{archive: a, roots: roots, prefix: prefix, format: format}, nil
}

func getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}
