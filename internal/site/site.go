// Package site hosts published archives: it allocates an origin in the
// object store for each site and tracks its deployment status.
package site

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_host.go -package=mocks microarchive/internal/site Host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"microarchive/internal/contextutil"
	"microarchive/internal/storage"
)

// ErrNotFound is returned for unknown site ids.
var ErrNotFound = errors.New("site not found")

type Status string

const (
	StatusInProgress Status = "InProgress"
	StatusDeployed   Status = "Deployed"
)

// Info describes a hosted site.
type Info struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
	// Origin is the object store prefix the site is served from.
	Origin string `json:"origin"`
	Status Status `json:"status"`
}

// Host creates and inspects sites.
type Host interface {
	// CreateOrUpdateSite returns the site existingID when given, and
	// creates a new site for name otherwise.
	CreateOrUpdateSite(ctx context.Context, name, existingID string) (Info, error)
	GetSite(ctx context.Context, id string) (Info, error)
}

// ObjectChecker reports whether a site file has been uploaded.
type ObjectChecker interface {
	Exists(ctx context.Context, origin, name string) (bool, error)
}

// RegistryHost is a Host backed by the SQLite site registry. A site is
// deployed once its index page exists under its origin.
type RegistryHost struct {
	sites          storage.SiteStore
	objects        ObjectChecker
	prefix         string
	domainTemplate string
	suffix         func() string
}

// NewRegistryHost returns a host that allocates origins next to prefix and
// derives domains from domainTemplate, whose "%s" is replaced by the site id.
func NewRegistryHost(sites storage.SiteStore, objects ObjectChecker, prefix, domainTemplate string) *RegistryHost {
	return &RegistryHost{
		sites:          sites,
		objects:        objects,
		prefix:         prefix,
		domainTemplate: domainTemplate,
		suffix:         func() string { return randomLetters(5) },
	}
}

func (h *RegistryHost) CreateOrUpdateSite(ctx context.Context, name, existingID string) (Info, error) {
	if existingID != "" {
		return h.GetSite(ctx, existingID)
	}

	logger := getLogger(ctx)
	id := uuid.New().String()
	rec := &storage.SiteRecord{
		ID:     id,
		Name:   name,
		Domain: strings.Replace(h.domainTemplate, "%s", id, 1),
		Origin: strings.TrimSuffix(h.prefix, "/") + "_webdata_" + h.suffix(),
		Status: string(StatusInProgress),
	}
	if err := h.sites.Create(ctx, rec); err != nil {
		return Info{}, fmt.Errorf("failed to create site %s: %w", name, err)
	}

	logger.InfoContext(ctx, "created site", "site_id", rec.ID, "name", name, "origin", rec.Origin)
	return infoOf(rec), nil
}

func (h *RegistryHost) GetSite(ctx context.Context, id string) (Info, error) {
	rec, err := h.sites.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return Info{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to load site %s: %w", id, err)
	}

	if Status(rec.Status) != StatusDeployed {
		ok, err := h.objects.Exists(ctx, rec.Origin, storage.IndexFile)
		if err != nil {
			return Info{}, fmt.Errorf("failed to check site %s: %w", id, err)
		}
		if ok {
			if err := h.sites.UpdateStatus(ctx, id, string(StatusDeployed)); err != nil {
				return Info{}, fmt.Errorf("failed to update site %s: %w", id, err)
			}
			rec.Status = string(StatusDeployed)
			getLogger(ctx).InfoContext(ctx, "site deployed", "site_id", id, "domain", rec.Domain)
		}
	}
	return infoOf(rec), nil
}

func infoOf(rec *storage.SiteRecord) Info {
	return Info{
		ID:     rec.ID,
		Domain: rec.Domain,
		Origin: rec.Origin,
		Status: Status(rec.Status),
	}
}

func randomLetters(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}
