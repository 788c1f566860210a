// Package iiif renders an archive as a IIIF Presentation 3 manifest.
package iiif

// Context is the Presentation 3 JSON-LD context.
const Context = "http://iiif.io/api/presentation/3/context.json"

// LanguageMap maps a language code to label values.
type LanguageMap map[string][]string

func english(s string) LanguageMap {
	return LanguageMap{"en": {s}}
}

type LabelValue struct {
	Label LanguageMap `json:"label"`
	Value LanguageMap `json:"value"`
}

type Manifest struct {
	Context           string      `json:"@context"`
	ID                string      `json:"id"`
	Type              string      `json:"type"`
	Label             LanguageMap `json:"label"`
	Rights            string      `json:"rights,omitempty"`
	RequiredStatement *LabelValue `json:"requiredStatement,omitempty"`
	Items             []Canvas    `json:"items"`
	Structures        []*Range    `json:"structures"`
}

type Canvas struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	Label     LanguageMap      `json:"label"`
	Height    int              `json:"height"`
	Width     int              `json:"width"`
	Thumbnail []Resource       `json:"thumbnail,omitempty"`
	Items     []AnnotationPage `json:"items"`
}

type AnnotationPage struct {
	ID    string       `json:"id"`
	Type  string       `json:"type"`
	Items []Annotation `json:"items"`
}

type Annotation struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Motivation string   `json:"motivation"`
	Target     string   `json:"target"`
	Body       Resource `json:"body"`
}

// Resource is an image body or thumbnail.
type Resource struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Format string `json:"format,omitempty"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// RangeItem is either a nested *Range or a CanvasRef.
type RangeItem interface {
	rangeItem()
}

type Range struct {
	ID    string      `json:"id"`
	Type  string      `json:"type"`
	Label LanguageMap `json:"label"`
	Items []RangeItem `json:"items"`
}

// CanvasRef points from a range to a canvas of the manifest.
type CanvasRef struct {
	ID    string      `json:"id"`
	Type  string      `json:"type"`
	Label LanguageMap `json:"label,omitempty"`
}

func (*Range) rangeItem()    {}
func (CanvasRef) rangeItem() {}
