package mindmap

import (
	"errors"
	"fmt"
	"slices"
)

// ErrRootDeletion is returned by [Tree.Delete] when asked to delete the root.
// The tree is left unchanged.
var ErrRootDeletion = errors.New("root node cannot be deleted")

// rootPath is the path reported for the root in [MalformedDocumentError].
const rootPath = "$"

// Node is one entry in the hierarchy.
//
// The text fields may be read freely. Changes should go through the owning
// [Tree] so that every mutation is visible to exports; ID must never be
// changed because the tree indexes nodes by it.
type Node struct {
	ID           string
	Label        string
	ShortSummary string
	LongSummary  string

	children []*Node
	expanded bool
}

// VisibleChildren returns the children shown when the node is expanded, or
// nil when it is collapsed. The slice is a read-only view.
func (n *Node) VisibleChildren() []*Node {
	if n.expanded {
		return n.children
	}
	return nil
}

// HiddenChildren returns the children held back while the node is collapsed,
// or nil when it is expanded. The slice is a read-only view.
func (n *Node) HiddenChildren() []*Node {
	if n.expanded {
		return nil
	}
	return n.children
}

// Children returns all children in document order regardless of visibility.
// The slice is a read-only view.
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Expanded reports whether the node currently shows its children.
// Leaves are never reported as expanded.
func (n *Node) Expanded() bool { return n.expanded && len(n.children) > 0 }

// Collapsed reports whether the node has children that are currently hidden.
func (n *Node) Collapsed() bool { return !n.expanded && len(n.children) > 0 }

// Tree owns a single root node and, transitively, every node below it.
//
// Besides the node graph the tree keeps two indices: nodes by ID and the
// parent ID of every non-root node. The zero value is not usable; build trees
// with [Load].
type Tree struct {
	root    *Node
	nodes   map[string]*Node
	parents map[string]string // child ID -> parent ID, no entry for the root
}

// Load builds a tree from doc.
//
// The root starts expanded and every other node collapsed. Load returns a
// [*MalformedDocumentError] if doc is nil, if any node has an empty id or
// label, or if two nodes share an id. The returned tree shares no memory with
// doc.
func Load(doc *Document) (*Tree, error) {
	t := &Tree{
		nodes:   make(map[string]*Node),
		parents: make(map[string]string),
	}
	root, err := t.build(doc, rootPath)
	if err != nil {
		return nil, err
	}
	root.expanded = true
	t.root = root
	return t, nil
}

func (t *Tree) build(doc *Document, path string) (*Node, error) {
	if doc == nil {
		return nil, &MalformedDocumentError{Path: path, Reason: "node is missing"}
	}
	if err := doc.Validate(); err != nil {
		return nil, &MalformedDocumentError{Path: path, Reason: err.Error()}
	}
	if _, dup := t.nodes[doc.ID]; dup {
		return nil, &MalformedDocumentError{Path: path, Reason: fmt.Sprintf("duplicate id %q", doc.ID)}
	}

	n := &Node{
		ID:           doc.ID,
		Label:        doc.Label,
		ShortSummary: doc.ShortSummary,
		LongSummary:  doc.LongSummary,
	}
	t.nodes[n.ID] = n

	if len(doc.Children) > 0 {
		n.children = make([]*Node, 0, len(doc.Children))
	}
	for i, cd := range doc.Children {
		c, err := t.build(cd, childPath(path, i))
		if err != nil {
			return nil, err
		}
		t.parents[c.ID] = n.ID
		n.children = append(n.children, c)
	}
	return n, nil
}

// Root returns the root node. It is never nil for a loaded tree.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of nodes reachable from the root.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node with the given ID and true, or nil and false if no
// such node is reachable from the root.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Contains reports whether a node with the given ID is reachable from the root.
func (t *Tree) Contains(id string) bool {
	_, ok := t.nodes[id]
	return ok
}

// Parent returns the parent of the node with the given ID. It returns nil and
// false for the root and for unknown IDs.
func (t *Tree) Parent(id string) (*Node, bool) {
	pid, ok := t.parents[id]
	if !ok {
		return nil, false
	}
	return t.nodes[pid], true
}

// IsRoot reports whether id names the root.
func (t *Tree) IsRoot(id string) bool { return t.root != nil && t.root.ID == id }

// IsDescendant reports whether the node id lies in the subtree rooted at
// ancestor. A node is considered a descendant of itself.
func (t *Tree) IsDescendant(id, ancestor string) bool {
	if !t.Contains(id) || !t.Contains(ancestor) {
		return false
	}
	for cur := id; ; {
		if cur == ancestor {
			return true
		}
		pid, ok := t.parents[cur]
		if !ok {
			return false
		}
		cur = pid
	}
}

// Depth returns the number of edges between the root and id, or -1 if id is
// unknown.
func (t *Tree) Depth(id string) int {
	if !t.Contains(id) {
		return -1
	}
	d := 0
	for cur := id; ; d++ {
		pid, ok := t.parents[cur]
		if !ok {
			return d
		}
		cur = pid
	}
}

// Toggle flips the node between expanded and collapsed and reports whether
// anything changed. Leaves and unknown IDs are left alone. Toggling twice
// restores the previous state and child order exactly.
func (t *Tree) Toggle(id string) bool {
	n, ok := t.nodes[id]
	if !ok || n.IsLeaf() {
		return false
	}
	n.expanded = !n.expanded
	return true
}

// ExpandAll expands the node and every node below it.
// Unknown IDs are ignored.
func (t *Tree) ExpandAll(id string) {
	if n, ok := t.nodes[id]; ok {
		setExpanded(n, true)
	}
}

// CollapseAll collapses the node and every node below it. Collapsing the
// root leaves only the root visible.
// Unknown IDs are ignored.
func (t *Tree) CollapseAll(id string) {
	if n, ok := t.nodes[id]; ok {
		setExpanded(n, false)
	}
}

func setExpanded(n *Node, expanded bool) {
	n.expanded = expanded
	for _, c := range n.children {
		setExpanded(c, expanded)
	}
}

// EditSummary replaces the long summary of the node. The text is stored as
// given; callers trim it. It reports false only when id is unknown.
func (t *Tree) EditSummary(id, text string) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	n.LongSummary = text
	return true
}

// EditLabel replaces the display label of the node. It reports false only
// when id is unknown.
func (t *Tree) EditLabel(id, label string) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	n.Label = label
	return true
}

// Delete removes the node and its whole subtree.
//
// The remaining siblings keep their relative order and the node's parent
// keeps its visibility state. Deleting the root returns [ErrRootDeletion]
// and changes nothing. Deleting an unknown ID is a no-op.
func (t *Tree) Delete(id string) error {
	if t.IsRoot(id) {
		return ErrRootDeletion
	}
	pid, ok := t.parents[id]
	if !ok {
		return nil
	}
	parent := t.nodes[pid]
	n := t.nodes[id]
	parent.children = slices.DeleteFunc(parent.children, func(c *Node) bool { return c == n })
	if len(parent.children) == 0 {
		parent.children = nil
	}
	t.forget(n)
	return nil
}

// forget drops n and its descendants from the indices.
func (t *Tree) forget(n *Node) {
	delete(t.nodes, n.ID)
	delete(t.parents, n.ID)
	for _, c := range n.children {
		t.forget(c)
	}
}

// Render returns the read-only view of the currently visible nodes and edges.
// The view is computed lazily from live state each time it is ranged over.
func (t *Tree) Render() *View { return &View{tree: t} }

// Serialize converts the tree back to its document form. Visible and hidden
// children are merged into one ordered list, so collapse state is not
// persisted.
func (t *Tree) Serialize() *Document { return serialize(t.root) }

func serialize(n *Node) *Document {
	d := &Document{
		ID:           n.ID,
		Label:        n.Label,
		ShortSummary: n.ShortSummary,
		LongSummary:  n.LongSummary,
	}
	if len(n.children) > 0 {
		d.Children = make([]*Document, len(n.children))
		for i, c := range n.children {
			d.Children[i] = serialize(c)
		}
	}
	return d
}
