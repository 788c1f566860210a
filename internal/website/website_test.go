package website

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microarchive/internal/archive"
	"microarchive/internal/hierarchy"
)

func render(t *testing.T, a archive.Archive) string {
	t.Helper()
	roots, err := hierarchy.Build(a.Items)
	require.NoError(t, err)
	out, err := Render("family-papers", "site-123", a, roots)
	require.NoError(t, err)
	return out
}

func TestRender(t *testing.T) {
	date := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	a := archive.Archive{
		Identity: archive.Identity{Title: "Family Papers", Extent: "4 scanned images", DescriptionDate: &date},
		Description: archive.Description{
			Biography: "Born in **1901**.",
			Scope:     "Paragraph 1\n\nParagraph 2",
			Languages: []string{"en", "xx-not-real"},
		},
		Contact: archive.Contact{Holder: "The Archive", Email: "info@example.org"},
		Items: []archive.Item{
			{ID: "Dir1/item1", Title: "Letter", ThumbnailURL: "https://img.example.org/t1", DisplayURL: "https://img.example.org/d1"},
			{ID: "item2", Scope: "A postcard"},
		},
	}
	out := render(t, a)

	assert.Contains(t, out, "<title>Family Papers</title>")
	assert.Contains(t, out, "<dd>4 scanned images</dd>")
	assert.Contains(t, out, "<dd>2024-01-31</dd>")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "<strong>1901</strong>")
	assert.Contains(t, out, "<p>Paragraph 1</p>")
	assert.Contains(t, out, "<p>Paragraph 2</p>")
	assert.Contains(t, out, "The Archive<br>info@example.org<br>")
	assert.Contains(t, out, `href="family-papers.xml"`)
	assert.Contains(t, out, `href="family-papers.json"`)
	assert.Contains(t, out, "<code>site-123</code>")

	assert.Contains(t, out, `<li class="folder"><span>Dir1</span> <small>(1)</small>`)
	assert.Contains(t, out, `<img src="https://img.example.org/t1"`)
	assert.Contains(t, out, `<a href="https://img.example.org/d1">`)
	assert.Contains(t, out, "<span>Letter</span>")
	assert.Contains(t, out, "<span>item2</span>", "untitled items show their id")
	assert.Contains(t, out, "<p>A postcard</p>")

	assert.Less(t, strings.Index(out, "Dir1"), strings.Index(out, "item2"))
}

func TestRender_EscapesText(t *testing.T) {
	out := render(t, archive.Archive{
		Identity: archive.Identity{Title: "<script>alert(1)</script>"},
		Items:    []archive.Item{{ID: "a", Title: "Tom & Jerry"}},
	})
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Tom &amp; Jerry")
}

func TestRender_RawHTMLInMarkdownOmitted(t *testing.T) {
	out := render(t, archive.Archive{
		Description: archive.Description{Scope: "Hello <img src=x onerror=alert(1)>"},
	})
	assert.NotContains(t, out, "onerror")
}

func TestRender_EmptyArchive(t *testing.T) {
	out := render(t, archive.Archive{})
	assert.NotContains(t, out, `id="contents"`)
	assert.NotContains(t, out, `id="biography"`)
	assert.NotContains(t, out, `id="contact"`)
	assert.NotContains(t, out, "<dt>Extent</dt>")
	assert.Contains(t, out, `href="family-papers.xml"`)
}
