package iiif

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"strings"

	"microarchive/internal/archive"
	"microarchive/internal/hierarchy"
)

// Canvas and thumbnail defaults.
const (
	DefaultWidth       = 768
	DefaultHeight      = 1024
	DefaultThumbWidth  = 100
	DefaultThumbHeight = 150
	DefaultImageFormat = ".jpg"
)

// Config controls identifiers and image URLs of a rendered manifest.
type Config struct {
	// BaseURL is the public location of the site; the manifest lives at
	// {BaseURL}/{Name}.json.
	BaseURL string
	Name    string
	// ServiceURL is the IIIF Image API prefix that item keys are appended to.
	ServiceURL string
	// Prefix is the storage prefix the item ids are relative to.
	Prefix      string
	ImageFormat string
	Width       int
	Height      int
	ThumbWidth  int
	ThumbHeight int
	// Attribution is the required statement when the archive has no holder.
	Attribution string
	Rights      string
}

func (c Config) withDefaults() Config {
	if c.ImageFormat == "" {
		c.ImageFormat = DefaultImageFormat
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.ThumbWidth <= 0 {
		c.ThumbWidth = DefaultThumbWidth
	}
	if c.ThumbHeight <= 0 {
		c.ThumbHeight = DefaultThumbHeight
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	return c
}

type Renderer struct {
	cfg Config
}

func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg.withDefaults()}
}

// RenderArchive builds the hierarchy from a.Items and renders the manifest.
func (r *Renderer) RenderArchive(a archive.Archive) (string, error) {
	roots, err := hierarchy.Build(a.Items)
	if err != nil {
		return "", fmt.Errorf("failed to build hierarchy: %w", err)
	}
	return r.Render(a, roots)
}

// Render serializes the manifest as indented JSON.
func (r *Renderer) Render(a archive.Archive, roots []hierarchy.Node) (string, error) {
	out, err := json.MarshalIndent(r.Manifest(a, roots), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return string(out), nil
}

// Manifest builds one canvas per item in input order and one range per
// root folder of the hierarchy.
func (r *Renderer) Manifest(a archive.Archive, roots []hierarchy.Node) Manifest {
	m := Manifest{
		Context:    Context,
		ID:         fmt.Sprintf("%s/%s.json", r.cfg.BaseURL, r.cfg.Name),
		Type:       "Manifest",
		Label:      english(a.Identity.Title),
		Rights:     r.cfg.Rights,
		Items:      make([]Canvas, 0, len(a.Items)),
		Structures: []*Range{},
	}

	attribution := strings.TrimSpace(a.Contact.Holder)
	if attribution == "" {
		attribution = r.cfg.Attribution
	}
	if attribution != "" {
		m.RequiredStatement = &LabelValue{
			Label: english("Attribution"),
			Value: english(attribution),
		}
	}

	for _, item := range a.Items {
		m.Items = append(m.Items, r.canvas(item))
	}
	for _, n := range roots {
		if f, ok := n.(*hierarchy.Folder); ok {
			m.Structures = append(m.Structures, r.rangeOf(f))
		}
	}
	return m
}

// CanvasID is the canvas identifier of an item.
func (r *Renderer) CanvasID(id string) string {
	return r.cfg.ServiceURL + url.QueryEscape(r.cfg.Prefix+id)
}

func (r *Renderer) canvas(item archive.Item) Canvas {
	id := r.CanvasID(item.ID)
	format := imageMediaType(r.cfg.ImageFormat)
	return Canvas{
		ID:     id,
		Type:   "Canvas",
		Label:  english(item.Label()),
		Height: r.cfg.Height,
		Width:  r.cfg.Width,
		Thumbnail: []Resource{{
			ID:     fmt.Sprintf("%s/full/!%d,%d/0/default%s", id, r.cfg.ThumbWidth, r.cfg.ThumbHeight, r.cfg.ImageFormat),
			Type:   "Image",
			Format: format,
		}},
		Items: []AnnotationPage{{
			ID:   id + "/page",
			Type: "AnnotationPage",
			Items: []Annotation{{
				ID:         id + "/annotation",
				Type:       "Annotation",
				Motivation: "painting",
				Target:     id,
				Body: Resource{
					ID:     fmt.Sprintf("%s/full/max/0/default%s", id, r.cfg.ImageFormat),
					Type:   "Image",
					Format: format,
					Height: r.cfg.Height,
					Width:  r.cfg.Width,
				},
			}},
		}},
	}
}

func (r *Renderer) rangeOf(f *hierarchy.Folder) *Range {
	rg := &Range{
		ID:    fmt.Sprintf("%s/%s/range/%s", r.cfg.BaseURL, r.cfg.Name, f.Key),
		Type:  "Range",
		Label: english(f.Title()),
		Items: make([]RangeItem, 0, len(f.Children)),
	}
	for _, child := range f.Children {
		switch child := child.(type) {
		case *hierarchy.Folder:
			rg.Items = append(rg.Items, r.rangeOf(child))
		case *hierarchy.Leaf:
			rg.Items = append(rg.Items, CanvasRef{
				ID:    r.CanvasID(child.Item.ID),
				Type:  "Canvas",
				Label: english(child.Item.Label()),
			})
		}
	}
	return rg
}

func imageMediaType(ext string) string {
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
