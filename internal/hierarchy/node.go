// Package hierarchy rebuilds the folder tree implied by slash-delimited item
// identifiers and answers structural queries over it.
package hierarchy

import (
	"strings"

	"microarchive/internal/archive"
)

// Separator delimits path components in item identifiers.
const Separator = "/"

// Node is either a *Folder or a *Leaf.
type Node interface {
	// ID is the full path key of the node.
	ID() string
	// Title is the display title: the folder name, or the item title.
	Title() string

	node()
}

// Folder is a synthetic node inferred from a shared id prefix.
type Folder struct {
	Key      string
	Name     string
	Children []Node
}

func (f *Folder) ID() string    { return f.Key }
func (f *Folder) Title() string { return f.Name }
func (*Folder) node()           {}

// Leaf wraps a real item.
type Leaf struct {
	Item archive.Item
}

func (l *Leaf) ID() string    { return l.Item.ID }
func (l *Leaf) Title() string { return l.Item.Title }
func (*Leaf) node()           {}

// parentKey returns the key of the enclosing folder, or "" for a root key.
func parentKey(key string) string {
	i := strings.LastIndex(key, Separator)
	if i < 0 {
		return ""
	}
	return key[:i]
}

// lastComponent returns the final path component of key.
func lastComponent(key string) string {
	return key[strings.LastIndex(key, Separator)+1:]
}
