// Package ead renders an archive and its folder hierarchy as an EAD 2002
// finding aid.
package ead

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"microarchive/internal/archive"
	"microarchive/internal/hierarchy"
)

const indent = "  "

var blankLines = regexp.MustCompile(`\n[ \t\r]*\n`)

// Paragraphs splits text into blocks separated by one or more blank lines.
// Blocks are trimmed; empty blocks are dropped.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range blankLines.Split(text, -1) {
		if b := strings.TrimSpace(block); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Renderer produces EAD XML documents. The zero value is ready to use.
type Renderer struct {
	// URL, when set, is written as the url attribute of eadid.
	URL string
	// Now returns the creation date; defaults to time.Now.
	Now func() time.Time
	// Logger receives warnings for unresolved languages; defaults to slog.Default().
	Logger *slog.Logger
}

// NewRenderer returns a Renderer that records the given document URL.
func NewRenderer(url string) *Renderer {
	return &Renderer{URL: url}
}

// RenderArchive builds the hierarchy from a.Items and renders it.
func (r *Renderer) RenderArchive(a archive.Archive) (string, error) {
	roots, err := hierarchy.Build(a.Items)
	if err != nil {
		return "", fmt.Errorf("failed to build hierarchy: %w", err)
	}
	return r.Render(a, roots)
}

// Render serializes the archive and its hierarchy as indented EAD XML.
func (r *Renderer) Render(a archive.Archive, roots []hierarchy.Node) (string, error) {
	doc := document{
		Xmlns:          Namespace,
		XmlnsXlink:     xlinkNamespace,
		XmlnsXsi:       xsiNamespace,
		SchemaLocation: schemaLocation,
		Header:         r.header(a),
		ArchDesc:       r.archDesc(a, roots),
	}

	out, err := xml.MarshalIndent(doc, "", indent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal EAD: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Renderer) header(a archive.Archive) header {
	h := header{
		CountryEncoding:    "iso3166-1",
		DateEncoding:       "iso8601",
		ScriptEncoding:     "iso15924",
		RepositoryEncoding: "iso15511",
		RelatedEncoding:    "DC",
		EADID:              eadID{URL: r.URL, Text: a.Slug()},
		FileDesc: fileDesc{
			TitleStmt: titleStmt{TitleProper: a.Identity.Title},
		},
		ProfileDesc: profileDesc{
			Creation: creation{
				Text: creationText,
				Date: dateOf(r.now()),
			},
			LangUsage: langUsage{
				Languages: []languageElem{{LangCode: "eng", Name: "English"}},
			},
		},
	}
	if lines := a.Contact.Lines(); len(lines) > 0 {
		h.FileDesc.PublicationStmt = &publicationStmt{AddressLines: lines}
	}
	return h
}

func (r *Renderer) archDesc(a archive.Archive, roots []hierarchy.Node) archDesc {
	ad := archDesc{
		Level: "collection",
		Did: did{
			UnitID:    a.Slug(),
			UnitTitle: nonBlank(a.Identity.Title),
		},
	}
	if extent := strings.TrimSpace(a.Identity.Extent); extent != "" {
		ad.Did.PhysDesc = &physDesc{Label: "Extent", Extent: extent}
	}
	if len(a.Description.Languages) > 0 {
		ad.Did.LangMaterial = &langMaterial{Languages: r.languages(a.Description.Languages)}
	}
	if ps := Paragraphs(a.Description.Biography); len(ps) > 0 {
		ad.BiogHist = &textBlock{Paragraphs: ps}
	}
	if ps := Paragraphs(a.Description.Scope); len(ps) > 0 {
		ad.ScopeContent = &textBlock{Paragraphs: ps}
	}
	ad.ProcessInfo = processInfoOf(a)
	if len(roots) > 0 {
		ad.Dsc = &dsc{Components: components(roots, 1)}
	}
	return ad
}

func (r *Renderer) languages(codes []string) []languageElem {
	out := make([]languageElem, 0, len(codes))
	for _, code := range codes {
		lang, err := ResolveLanguage(code)
		if err != nil {
			r.logger().Warn("using raw language code", "code", code, "error", err)
		}
		out = append(out, languageElem{LangCode: lang.Code, Name: lang.Name})
	}
	return out
}

func processInfoOf(a archive.Archive) *processInfo {
	var ps []paragraph
	for _, p := range Paragraphs(a.Control.Notes) {
		ps = append(ps, paragraph{Text: p})
	}
	if date := a.DescriptionDate(); date != nil {
		d := dateOf(*date)
		ps = append(ps, paragraph{Date: &d})
	}
	if len(ps) == 0 {
		return nil
	}
	return &processInfo{Paragraphs: ps}
}

// components renders nodes at the given depth as c<depth> elements.
func components(nodes []hierarchy.Node, depth int) []component {
	out := make([]component, 0, len(nodes))
	for _, n := range nodes {
		c := component{
			XMLName: xml.Name{Local: fmt.Sprintf("c%d", depth)},
			Did: did{
				UnitID:    n.ID(),
				UnitTitle: nonBlank(n.Title()),
			},
		}
		switch n := n.(type) {
		case *hierarchy.Folder:
			c.Level = "file"
			c.Components = components(n.Children, depth+1)
		case *hierarchy.Leaf:
			c.Level = "item"
			if scope := nonBlank(n.Item.Scope); scope != "" {
				c.Scope = &textBlock{Paragraphs: []string{scope}}
			}
		}
		out = append(out, c)
	}
	return out
}

// nonBlank returns s unchanged, or "" when s is only whitespace.
func nonBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func dateOf(t time.Time) eadDate {
	return eadDate{Normal: t.Format("20060102"), Text: t.Format("2006-01-02")}
}
