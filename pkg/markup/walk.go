package markup

// WalkFunc is called for each node with its parent (nil for the root).
// Return a non-nil error to stop the walk.
type WalkFunc func(n, parent *Node) error

// Walk performs a depth-first traversal with enter and leave callbacks.
// Enter is called before visiting sub-nodes, leave after. Either may be nil.
func Walk(root *Node, enter, leave WalkFunc) error {
	return walk(root, nil, enter, leave)
}

func walk(n, parent *Node, enter, leave WalkFunc) error {
	if n == nil {
		return nil
	}

	if enter != nil {
		if err := enter(n, parent); err != nil {
			return err
		}
	}

	for _, child := range n.Fields() {
		if err := walk(child, n, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(n, parent); err != nil {
			return err
		}
	}

	return nil
}

// Parents builds a side table mapping every node below root to its parent.
func Parents(root *Node) map[*Node]*Node {
	parents := make(map[*Node]*Node)
	_ = Walk(root, func(n, parent *Node) error {
		if parent != nil {
			parents[n] = parent
		}
		return nil
	}, nil)
	return parents
}
