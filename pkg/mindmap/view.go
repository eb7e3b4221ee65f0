package mindmap

import "iter"

// VisibleNode is a snapshot of one currently visible node. It carries the
// node's content and a position hint, but no way to mutate the tree.
type VisibleNode struct {
	ID           string
	Label        string
	ShortSummary string
	LongSummary  string

	Depth int // Edges between the root and this node
	Order int // Pre-order index among visible nodes (root = 0)

	Collapsed bool // Node has children that are currently hidden
	Leaf      bool // Node has no children at all
}

// Edge connects a visible parent to one of its visible children.
type Edge struct {
	From string // Parent ID
	To   string // Child ID
}

// View is the derived render sequence of a [Tree]. It walks only visible
// children, so hidden subtrees never appear.
//
// Both sequences are restartable: each range re-reads the live tree. A View
// obtained before a mutation reflects the mutation when ranged over again,
// but a range in progress must not interleave with mutations.
type View struct {
	tree *Tree
}

// Nodes yields one entry per visible node in pre-order.
func (v *View) Nodes() iter.Seq[VisibleNode] {
	return func(yield func(VisibleNode) bool) {
		order := 0
		var walk func(n *Node, depth int) bool
		walk = func(n *Node, depth int) bool {
			vn := VisibleNode{
				ID:           n.ID,
				Label:        n.Label,
				ShortSummary: n.ShortSummary,
				LongSummary:  n.LongSummary,
				Depth:        depth,
				Order:        order,
				Collapsed:    n.Collapsed(),
				Leaf:         n.IsLeaf(),
			}
			order++
			if !yield(vn) {
				return false
			}
			for _, c := range n.VisibleChildren() {
				if !walk(c, depth+1) {
					return false
				}
			}
			return true
		}
		walk(v.tree.root, 0)
	}
}

// Edges yields one edge per visible parent-child pair, parents before their
// children.
func (v *View) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		var walk func(n *Node) bool
		walk = func(n *Node) bool {
			for _, c := range n.VisibleChildren() {
				if !yield(Edge{From: n.ID, To: c.ID}) {
					return false
				}
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(v.tree.root)
	}
}

// Len returns the number of visible nodes.
func (v *View) Len() int {
	n := 0
	for range v.Nodes() {
		n++
	}
	return n
}
