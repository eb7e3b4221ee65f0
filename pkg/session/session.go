// Package session holds the state of one editing session over a mindmap.
//
// A [Session] owns the loaded [mindmap.Tree] together with the presentation
// state that belongs to it (the current selection and the export name) and
// exposes one method per user event. Presentation layers (the terminal
// browser, the HTTP API) keep a session instead of process-wide globals and
// dispatch every input through it.
//
// # Events
//
// The methods mirror what a user can do in the diagram:
//
//	sess.Activate("a")                 // click: toggle a and select it
//	sess.EditSummary("a", "  text ")   // save: stored as "text"
//	sess.Delete("a")                   // delete: clears the selection if it was inside a
//	sess.CollapseAll()                 // toolbar buttons act on the root
//	doc := sess.Export()               // download
//
// Errors carry codes from [github.com/matzehuels/mindmap/pkg/errors] so that
// callers can map them to user messages or HTTP statuses.
//
// # Stores
//
// A [Store] keeps sessions by ID. [MemoryStore] is the only implementation;
// sessions live as long as the process.
//
// # Concurrency
//
// A Session is not safe for concurrent use. Callers dispatching events from
// several goroutines must serialize them, as the HTTP server does.
package session

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/observability"
)

// Session is one user's view of one mindmap.
type Session struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`

	tree     *mindmap.Tree
	selected string
}

// New wraps an already loaded tree in a session with a fresh ID.
func New(tree *mindmap.Tree, source string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now(),
		tree:      tree,
	}
}

// Open loads doc and wraps the result in a session. Schema violations are
// reported with [errors.ErrCodeInvalidDocument].
func Open(doc *mindmap.Document, source string) (*Session, error) {
	tree, err := mindmap.Load(doc)
	observability.Tree().OnLoad(source, doc.Count(), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "load %s", source)
	}
	return New(tree, source), nil
}

// Tree returns the session's tree for read access. Mutations should go
// through the session so that selection and hooks stay consistent.
func (s *Session) Tree() *mindmap.Tree { return s.tree }

// Render returns the current render sequence.
func (s *Session) Render() *mindmap.View { return s.tree.Render() }

// Export serializes the current tree.
func (s *Session) Export() *mindmap.Document {
	doc := s.tree.Serialize()
	observability.Tree().OnExport(s.tree.Len())
	return doc
}

// Node resolves id. Any id present in the loaded tree resolves, whatever its
// length or content. Unknown IDs are reported with [errors.ErrCodeNodeNotFound].
func (s *Session) Node(id string) (*mindmap.Node, error) {
	n, ok := s.tree.Node(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	return n, nil
}

// Select marks id as the selected node.
func (s *Session) Select(id string) error {
	_, err := s.Node(id)
	if err == nil {
		s.selected = id
	}
	observability.Tree().OnMutation(observability.OpSelect, id, err)
	return err
}

// ClearSelection deselects whatever is selected.
func (s *Session) ClearSelection() { s.selected = "" }

// SelectedID returns the ID of the selected node, or "" when nothing is selected.
func (s *Session) SelectedID() string { return s.selected }

// Selected returns the selected node, if any.
func (s *Session) Selected() (*mindmap.Node, bool) {
	if s.selected == "" {
		return nil, false
	}
	return s.tree.Node(s.selected)
}

// Toggle expands or collapses id. Toggling a leaf is not an error.
func (s *Session) Toggle(id string) error {
	_, err := s.Node(id)
	if err == nil {
		s.tree.Toggle(id)
	}
	observability.Tree().OnMutation(observability.OpToggle, id, err)
	return err
}

// Activate handles a click on a node: the node is toggled and selected.
func (s *Session) Activate(id string) error {
	if err := s.Toggle(id); err != nil {
		return err
	}
	s.selected = id
	return nil
}

// ExpandAll expands the whole tree.
func (s *Session) ExpandAll() {
	root := s.tree.Root().ID
	s.tree.ExpandAll(root)
	observability.Tree().OnMutation(observability.OpExpandAll, root, nil)
}

// CollapseAll collapses the whole tree, leaving only the root visible.
func (s *Session) CollapseAll() {
	root := s.tree.Root().ID
	s.tree.CollapseAll(root)
	observability.Tree().OnMutation(observability.OpCollapseAll, root, nil)
}

// EditSummary replaces the long summary of id with the trimmed text. It
// succeeds for every existing node; empty text clears the summary.
func (s *Session) EditSummary(id, text string) error {
	text = strings.TrimSpace(text)
	_, err := s.Node(id)
	if err == nil {
		s.tree.EditSummary(id, text)
	}
	observability.Tree().OnMutation(observability.OpEditSummary, id, err)
	return err
}

// EditLabel replaces the label of id with the trimmed text.
func (s *Session) EditLabel(id, label string) error {
	label = strings.TrimSpace(label)
	_, err := s.Node(id)
	if err == nil {
		err = errors.ValidateLabel(label)
	}
	if err == nil {
		s.tree.EditLabel(id, label)
	}
	observability.Tree().OnMutation(observability.OpEditLabel, id, err)
	return err
}

// Delete removes id and its subtree. The root cannot be deleted
// ([errors.ErrCodeRootDeletion]). If the selection was the deleted node or
// one of its descendants it is cleared.
func (s *Session) Delete(id string) error {
	err := s.delete(id)
	observability.Tree().OnMutation(observability.OpDelete, id, err)
	return err
}

func (s *Session) delete(id string) error {
	if _, err := s.Node(id); err != nil {
		return err
	}
	clearSel := s.selected != "" && s.tree.IsDescendant(s.selected, id)
	if err := s.tree.Delete(id); err != nil {
		if stderrors.Is(err, mindmap.ErrRootDeletion) {
			return errors.Wrap(errors.ErrCodeRootDeletion, err, "Root node cannot be deleted.")
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "delete %s", id)
	}
	if clearSel {
		s.selected = ""
	}
	return nil
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns an error with code SESSION_NOT_FOUND if it doesn't exist.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session, replacing any session with the same ID.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions in no particular order.
	List(ctx context.Context) ([]string, error)
}
