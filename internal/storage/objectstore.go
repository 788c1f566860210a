package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_object_store.go -package=mocks microarchive/internal/storage ObjectStore

import (
	"context"
	"net/url"
	"path"
	"strings"

	"microarchive/internal/archive"
)

const (
	// MetaFile is the private metadata snapshot stored next to a site.
	MetaFile = ".meta.json"
	// IndexFile is the site's landing page.
	IndexFile = "index.html"

	thumbDir = ".thumb"
)

// ObjectStore lists archive images and hosts the generated site files.
type ObjectStore interface {
	// ListItems returns one item per image stored under prefix.
	ListItems(ctx context.Context, prefix string) ([]archive.Item, error)
	// Upload writes the site files publicly and meta privately under origin.
	Upload(ctx context.Context, name, origin string, files SiteFiles, meta map[string]any) error
	// GetMetadata returns the snapshot stored under origin, or ErrNotFound.
	GetMetadata(ctx context.Context, origin string) (map[string]any, error)
	// Exists reports whether origin holds an object called name.
	Exists(ctx context.Context, origin, name string) (bool, error)
}

// SiteFiles are the rendered artifacts of one archive.
type SiteFiles struct {
	Index    string // index.html
	EAD      string // {name}.xml
	Manifest string // {name}.json
}

type siteObject struct {
	name        string
	contentType string
	body        string
}

func (f SiteFiles) objects(name string) []siteObject {
	return []siteObject{
		{IndexFile, "text/html", f.Index},
		{name + ".xml", "text/xml", f.EAD},
		{name + ".json", "application/json", f.Manifest},
	}
}

// ImageURLs builds IIIF Image API URLs for stored objects.
type ImageURLs struct {
	ServerURL string
}

// Display is the full size image URL of key.
func (u ImageURLs) Display(key string) string {
	return u.ServerURL + url.QueryEscape(key) + "/full/max/0/default.jpg"
}

// Thumbnail is the thumbnail image URL of key.
func (u ImageURLs) Thumbnail(key string) string {
	return u.ServerURL + url.QueryEscape(key) + "/full/!75,100/0/default.jpg"
}

// itemFromKey maps an object key under prefix to an item. Folder markers
// and thumbnails report false.
func (u ImageURLs) itemFromKey(key, prefix string) (archive.Item, bool) {
	if key == "" || strings.HasSuffix(key, "/") || strings.Contains(key, thumbDir) {
		return archive.Item{}, false
	}
	if !strings.HasPrefix(key, prefix) {
		return archive.Item{}, false
	}
	id := strings.TrimPrefix(key, prefix)
	id = strings.TrimSuffix(id, path.Ext(id))
	if id == "" {
		return archive.Item{}, false
	}
	return archive.Item{
		ID:           id,
		DisplayURL:   u.Display(key),
		ThumbnailURL: u.Thumbnail(key),
	}, true
}

// originPath strips the leading slash a site host may report.
func originPath(origin string) string {
	return strings.TrimPrefix(origin, "/")
}
