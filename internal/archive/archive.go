package archive

import (
	"fmt"
	"strings"
	"time"
)

// Identity holds the identifying fields of a collection.
type Identity struct {
	Title           string     `json:"title"`
	Extent          string     `json:"extent,omitempty"`
	DescriptionDate *time.Time `json:"description_date,omitempty"`
}

// Done reports whether title, date and extent are all present.
func (i Identity) Done() bool {
	return strings.TrimSpace(i.Title) != "" &&
		i.DescriptionDate != nil &&
		strings.TrimSpace(i.Extent) != ""
}

// Description holds the descriptive fields of a collection.
type Description struct {
	Biography string   `json:"biography,omitempty"`
	Scope     string   `json:"scope,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

// Done reports whether at least one of biography or scope is filled in.
func (d Description) Done() bool {
	return strings.TrimSpace(d.Biography) != "" || strings.TrimSpace(d.Scope) != ""
}

// Contact holds the holding institution's address details.
type Contact struct {
	Holder   string `json:"holder,omitempty"`
	Street   string `json:"street,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Fax      string `json:"fax,omitempty"`
	Website  string `json:"website,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Lines returns the non-blank contact fields, trimmed, in address order.
func (c Contact) Lines() []string {
	var lines []string
	for _, s := range []string{c.Holder, c.Street, c.Postcode, c.Phone, c.Fax, c.Website, c.Email} {
		if t := strings.TrimSpace(s); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// Done reports whether a holder has been given.
func (c Contact) Done() bool {
	return strings.TrimSpace(c.Holder) != ""
}

// Control holds administrative notes about the description itself.
type Control struct {
	Notes           string     `json:"notes,omitempty"`
	DescriptionDate *time.Time `json:"description_date,omitempty"`
}

// Item is a single scanned file in the archive.
// ID is a slash-delimited path such as "Box1/Folder2/scan003".
type Item struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	Scope        string `json:"scope,omitempty"`
	DisplayURL   string `json:"display_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Label returns the item title, falling back to its id.
func (it Item) Label() string {
	if strings.TrimSpace(it.Title) != "" {
		return it.Title
	}
	return it.ID
}

// Archive is the top-level aggregate handed to the renderers.
// Callers build a fresh value per render and do not mutate it afterwards.
type Archive struct {
	Identity    Identity    `json:"identity"`
	Description Description `json:"description"`
	Contact     Contact     `json:"contact"`
	Control     Control     `json:"control"`
	Items       []Item      `json:"items"`
}

// Done reports whether every mandatory section is complete.
func (a Archive) Done() bool {
	return a.Identity.Done() && a.Description.Done() && a.Contact.Done()
}

// Slug returns the URL-safe form of the archive title.
func (a Archive) Slug() string {
	return Slugify(a.Identity.Title)
}

// DefaultExtent describes n scanned files, e.g. "12 scanned images".
func DefaultExtent(n int) string {
	if n == 1 {
		return "1 scanned image"
	}
	return fmt.Sprintf("%d scanned images", n)
}
