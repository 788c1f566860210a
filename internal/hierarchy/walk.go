package hierarchy

// Walk visits every node of the forest in post-order: a node's children are
// visited before the node itself, siblings in order.
func Walk(roots []Node, fn func(n Node, depth int)) {
	for _, n := range roots {
		walk(n, 1, fn)
	}
}

func walk(n Node, depth int, fn func(Node, int)) {
	if f, ok := n.(*Folder); ok {
		for _, c := range f.Children {
			walk(c, depth+1, fn)
		}
	}
	fn(n, depth)
}

// LeafDirectories returns the folders that contain only items, in post-order
// visit sequence.
func LeafDirectories(roots []Node) []*Folder {
	var out []*Folder
	Walk(roots, func(n Node, _ int) {
		f, ok := n.(*Folder)
		if !ok {
			return
		}
		for _, c := range f.Children {
			if _, isFolder := c.(*Folder); isFolder {
				return
			}
		}
		out = append(out, f)
	})
	return out
}

// Find returns the node with the given id, or nil.
func Find(roots []Node, id string) Node {
	var found Node
	Walk(roots, func(n Node, _ int) {
		if found == nil && n.ID() == id {
			found = n
		}
	})
	return found
}

// CountLeaves returns the number of item nodes in the forest.
func CountLeaves(roots []Node) int {
	count := 0
	Walk(roots, func(n Node, _ int) {
		if _, ok := n.(*Leaf); ok {
			count++
		}
	})
	return count
}
