package server

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/httputil"
	pkgio "github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/session"
)

// NoDetailedSummary is shown for nodes without a long summary.
const NoDetailedSummary = "No detailed summary available."

// =============================================================================
// Response Types
// =============================================================================

type healthJSON struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type sessionJSON struct {
	*session.Session
	Nodes   int `json:"nodes"`
	Visible int `json:"visible"`
}

type sessionsJSON struct {
	Current  string   `json:"current"`
	Sessions []string `json:"sessions"`
}

type nodeJSON struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	ShortSummary string `json:"shortSummary,omitempty"`
	Depth        int    `json:"depth"`
	Collapsed    bool   `json:"collapsed"`
	Leaf         bool   `json:"leaf"`
}

type edgeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type treeJSON struct {
	Session  string     `json:"session"`
	Selected string     `json:"selected,omitempty"`
	Nodes    []nodeJSON `json:"nodes"`
	Edges    []edgeJSON `json:"edges"`
}

type nodeDetailJSON struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	ShortSummary string   `json:"shortSummary,omitempty"`
	LongSummary  string   `json:"longSummary"`
	HasSummary   bool     `json:"hasSummary"`
	Parent       string   `json:"parent,omitempty"`
	Children     []string `json:"children"`
	Expanded     bool     `json:"expanded"`
	Selected     bool     `json:"selected"`
}

type summaryRequest struct {
	LongSummary string `json:"longSummary"`
}

type labelRequest struct {
	Label string `json:"label"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, healthJSON{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	var resp sessionJSON
	err := s.withSession(r, func(sess *session.Session) error {
		resp = sessionJSON{Session: sess, Nodes: sess.Tree().Len(), Visible: sess.Render().Len()}
		return nil
	})
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := sessionsJSON{Current: s.current}
	ids, err := s.store.List(r.Context())
	s.mu.Unlock()
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}
	slices.Sort(ids)
	resp.Sessions = ids
	httputil.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	var resp treeJSON
	err := s.withSession(r, func(sess *session.Session) error {
		resp = treeResponse(sess)
		return nil
	})
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// treeResponse snapshots the current render. Callers hold the lock.
func treeResponse(sess *session.Session) treeJSON {
	view := sess.Render()
	resp := treeJSON{
		Session:  sess.ID,
		Selected: sess.SelectedID(),
		Nodes:    []nodeJSON{},
		Edges:    []edgeJSON{},
	}
	for n := range view.Nodes() {
		resp.Nodes = append(resp.Nodes, nodeJSON{
			ID:           n.ID,
			Label:        n.Label,
			ShortSummary: n.ShortSummary,
			Depth:        n.Depth,
			Collapsed:    n.Collapsed,
			Leaf:         n.Leaf,
		})
	}
	for e := range view.Edges() {
		resp.Edges = append(resp.Edges, edgeJSON{From: e.From, To: e.To})
	}
	return resp
}

// nodeID returns the decoded {id} path parameter. chi matches on the raw
// path when the request escaped reserved characters, so the parameter is
// still escaped in that case.
func nodeID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	decoded, err := url.PathUnescape(id)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidNodeID, err, "malformed node id %q", id)
	}
	return decoded, nil
}

// checkNodeID lets every id of the loaded tree through. Unknown ids that
// break the request limits get INVALID_NODE_ID instead of NODE_NOT_FOUND.
func checkNodeID(sess *session.Session, id string) error {
	if sess.Tree().Contains(id) {
		return nil
	}
	return errors.ValidateNodeID(id)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id, err := nodeID(r)
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}

	var resp nodeDetailJSON
	err = s.withSession(r, func(sess *session.Session) error {
		if err := checkNodeID(sess, id); err != nil {
			return err
		}
		n, err := sess.Node(id)
		if err != nil {
			return err
		}
		resp = detail(sess.Tree(), n, sess.SelectedID())
		return nil
	})
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

func detail(tree *mindmap.Tree, n *mindmap.Node, selected string) nodeDetailJSON {
	d := nodeDetailJSON{
		ID:           n.ID,
		Label:        n.Label,
		ShortSummary: n.ShortSummary,
		LongSummary:  n.LongSummary,
		HasSummary:   n.LongSummary != "",
		Children:     []string{},
		Expanded:     n.Expanded(),
		Selected:     n.ID == selected,
	}
	if d.LongSummary == "" {
		d.LongSummary = NoDetailedSummary
	}
	if p, ok := tree.Parent(n.ID); ok {
		d.Parent = p.ID
	}
	for _, c := range n.Children() {
		d.Children = append(d.Children, c.ID)
	}
	return d
}

// mutate applies fn under the lock and answers with the new render.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	var resp treeJSON
	err := s.withSession(r, func(sess *session.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		resp = treeResponse(sess)
		return nil
	})
	if err != nil {
		s.logger.Debug("event rejected", "error", err)
		httputil.RespondErr(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// mutateNode is mutate for routes under /api/nodes/{id}.
func (s *Server) mutateNode(w http.ResponseWriter, r *http.Request, fn func(sess *session.Session, id string) error) {
	id, err := nodeID(r)
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}
	s.mutate(w, r, func(sess *session.Session) error {
		if err := checkNodeID(sess, id); err != nil {
			return err
		}
		return fn(sess, id)
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.mutateNode(w, r, (*session.Session).Activate)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mutateNode(w, r, (*session.Session).Delete)
}

func (s *Server) handleEditSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondErr(w, err)
		return
	}
	if err := errors.ValidateSummary(req.LongSummary); err != nil {
		httputil.RespondErr(w, err)
		return
	}
	s.mutateNode(w, r, func(sess *session.Session, id string) error {
		return sess.EditSummary(id, req.LongSummary)
	})
}

func (s *Server) handleEditLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondErr(w, err)
		return
	}
	s.mutateNode(w, r, func(sess *session.Session, id string) error {
		return sess.EditLabel(id, req.Label)
	})
}

func (s *Server) handleExpandAll(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error { sess.ExpandAll(); return nil })
}

func (s *Server) handleCollapseAll(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error { sess.CollapseAll(); return nil })
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) error { sess.ClearSelection(); return nil })
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var doc *mindmap.Document
	err := s.withSession(r, func(sess *session.Session) error {
		doc = sess.Export()
		return nil
	})
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, s.export))
	if err := pkgio.WriteJSON(doc, w); err != nil {
		s.logger.Error("export failed", "error", err)
	}
}

// dot renders the addressed session's view to DOT under the lock.
func (s *Server) dot(r *http.Request) (string, error) {
	var dot string
	err := s.withSession(r, func(sess *session.Session) error {
		dot = nodelink.ToDOT(sess.Render(), nodelink.Options{
			Palette:   s.palette,
			Selected:  sess.SelectedID(),
			Summaries: true,
		})
		return nil
	})
	return dot, err
}

func (s *Server) handleRenderDOT(w http.ResponseWriter, r *http.Request) {
	dot, err := s.dot(r)
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Write([]byte(dot))
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	dot, err := s.dot(r)
	if err != nil {
		httputil.RespondErr(w, err)
		return
	}
	svg, err := nodelink.RenderSVGCached(r.Context(), s.cache, dot)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		respondStatus(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func respondStatus(w http.ResponseWriter, status int, detail string) {
	httputil.RespondError(w, status, detail)
}
