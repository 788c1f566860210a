// Package website renders the landing page of a published archive.
package website

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"microarchive/internal/archive"
	"microarchive/internal/ead"
	"microarchive/internal/hierarchy"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

type pageData struct {
	Title     string
	Name      string
	SiteKey   string
	Extent    string
	Date      string
	Languages []string
	Biography template.HTML
	Scope     template.HTML
	Contact   []string
	Tree      []treeNode
}

type treeNode struct {
	ID        string
	Title     string
	Folder    bool
	Scope     string
	Display   string
	Thumbnail string
	// Count is the number of items below a folder.
	Count    int
	Children []treeNode
}

// Render produces index.html for the archive. name is the slug the EAD
// and manifest files are published under; siteKey lets editors reopen
// the site for an update.
func Render(name, siteKey string, a archive.Archive, roots []hierarchy.Node) (string, error) {
	bio, err := renderMarkdown(a.Description.Biography)
	if err != nil {
		return "", err
	}
	scope, err := renderMarkdown(a.Description.Scope)
	if err != nil {
		return "", err
	}

	data := pageData{
		Title:     a.Identity.Title,
		Name:      name,
		SiteKey:   siteKey,
		Extent:    a.Identity.Extent,
		Languages: languageNames(a.Description.Languages),
		Biography: bio,
		Scope:     scope,
		Contact:   a.Contact.Lines(),
		Tree:      tree(roots),
	}
	if d := a.DescriptionDate(); d != nil {
		data.Date = d.Format(archive.DateLayout)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute index template: %w", err)
	}
	return buf.String(), nil
}

func renderMarkdown(text string) (template.HTML, error) {
	if text == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func languageNames(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		// Unresolved codes are shown as given
		lang, _ := ead.ResolveLanguage(code)
		out = append(out, lang.Name)
	}
	return out
}

func tree(nodes []hierarchy.Node) []treeNode {
	out := make([]treeNode, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *hierarchy.Folder:
			out = append(out, treeNode{
				ID:       n.ID(),
				Title:    n.Title(),
				Folder:   true,
				Count:    hierarchy.CountLeaves(n.Children),
				Children: tree(n.Children),
			})
		case *hierarchy.Leaf:
			out = append(out, treeNode{
				ID:        n.ID(),
				Title:     n.Item.Label(),
				Scope:     n.Item.Scope,
				Display:   n.Item.DisplayURL,
				Thumbnail: n.Item.ThumbnailURL,
			})
		}
	}
	return out
}
