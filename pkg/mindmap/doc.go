// Package mindmap holds the tree state behind an interactive mindmap: the
// loaded hierarchy, each node's expanded/collapsed state, and the mutations a
// presentation layer may request.
//
// # Overview
//
// A mindmap is a single-rooted hierarchy of nodes read from a [Document].
// [Load] turns the document into a [Tree], which is the one source of truth
// for everything that is displayed or exported afterwards. Presentation code
// never mutates nodes directly; it calls the tree's operations and redraws
// from [Tree.Render].
//
// # Basic Usage
//
//	t, err := mindmap.Load(doc)
//	if err != nil {
//	    return err
//	}
//	t.Toggle("a")                  // expand or collapse a
//	t.EditSummary("a", "New text") // replace a's long summary
//	if err := t.Delete("b"); err != nil {
//	    // errors.Is(err, mindmap.ErrRootDeletion) when b is the root
//	}
//	for n := range t.Render().Nodes() {
//	    fmt.Println(strings.Repeat("  ", n.Depth), n.Label)
//	}
//	out := t.Serialize() // back to the document shape
//
// # Visibility
//
// Every node with children is either expanded (its children are visible) or
// collapsed (its children are hidden). After [Load] the root is expanded and
// every other node is collapsed, so the first render shows the root with one
// level open. [Tree.Toggle] flips one node, [Tree.ExpandAll] and
// [Tree.CollapseAll] flip a whole subtree. Collapse state is presentation
// state only: [Tree.Serialize] always writes every child.
//
// # Identity
//
// Node IDs come from the document, must be unique, and are never reassigned.
// They are the only identity a presentation layer should keep across
// re-renders. Parent relations are kept as an ID map on the tree rather than
// as pointers on the nodes, so the node graph is strictly tree-shaped.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. All operations run to completion
// synchronously; callers that dispatch events from several goroutines must
// serialize them. A [View] reads the live tree, so a sequence obtained before a
// mutation must not be consumed after it.
package mindmap
