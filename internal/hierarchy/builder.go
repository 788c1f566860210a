package hierarchy

import (
	"cmp"
	"slices"
	"strings"

	"microarchive/internal/archive"
)

// Validate checks that id is non-empty and has no empty path components.
func Validate(id string) error {
	if id == "" {
		return &MalformedIdentifierError{ID: id, Reason: "empty identifier"}
	}
	for i, part := range strings.Split(id, Separator) {
		if part == "" {
			return &MalformedIdentifierError{ID: id, Reason: emptyComponentReason(i, id)}
		}
	}
	return nil
}

func emptyComponentReason(i int, id string) string {
	switch {
	case i == 0:
		return "leading separator"
	case strings.HasSuffix(id, Separator) && i == strings.Count(id, Separator):
		return "trailing separator"
	default:
		return "empty path component"
	}
}

// Build reconstructs the folder tree implied by the item ids.
//
// Every proper prefix of an item id becomes a Folder; every item becomes a
// Leaf under the folder of its directory path, or a root when the id has no
// separator. Roots and every child list are sorted ascending by id, so the
// result does not depend on input order.
func Build(items []archive.Item) ([]Node, error) {
	for _, it := range items {
		if err := Validate(it.ID); err != nil {
			return nil, err
		}
	}

	arena := make(map[string]Node, len(items))
	for _, it := range items {
		if _, dup := arena[it.ID]; dup {
			return nil, &ConflictingIdentifierError{ID: it.ID, Reason: "duplicate item identifier"}
		}
		arena[it.ID] = &Leaf{Item: it}
	}

	for _, it := range items {
		for key := parentKey(it.ID); key != ""; key = parentKey(key) {
			existing, ok := arena[key]
			if !ok {
				arena[key] = &Folder{Key: key, Name: lastComponent(key)}
				continue
			}
			if _, isLeaf := existing.(*Leaf); isLeaf {
				return nil, &ConflictingIdentifierError{
					ID:     key,
					Reason: "item identifier is also the folder of " + it.ID,
				}
			}
			// Ancestors above an existing folder were created with it.
			break
		}
	}

	keys := make([]string, 0, len(arena))
	for key := range arena {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var roots []Node
	for _, key := range keys {
		n := arena[key]
		pk := parentKey(key)
		if pk == "" {
			roots = append(roots, n)
			continue
		}
		parent := arena[pk].(*Folder)
		parent.Children = append(parent.Children, n)
	}

	// Keys are visited in sorted order, so the lists are already ordered;
	// sorting again keeps the contract explicit.
	sortNodes(roots)
	for _, n := range arena {
		if f, ok := n.(*Folder); ok {
			sortNodes(f.Children)
		}
	}
	return roots, nil
}

func sortNodes(nodes []Node) {
	slices.SortFunc(nodes, func(a, b Node) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}
