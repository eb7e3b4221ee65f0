// Package server exposes mindmap sessions over HTTP.
//
// Sessions live in a [session.Store] keyed by session ID. Requests address
// one with the X-Session-ID header and fall back to the current session,
// the one most recently handed to [New] or [Server.Replace].
//
// Every request is one user event. A single mutex serializes requests
// against the sessions, so the tree sees one event at a time in arrival order
// and each handler renders from the state its own mutation left behind.
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/session"
)

// Options configures a [Server].
type Options struct {
	Theme       config.Theme  // Palette for rendered diagrams
	CORSOrigins []string      // Allowed browser origins
	ExportName  string        // File name offered by /api/export
	Cache       cache.Cache   // SVG cache; nil disables caching
	Store       session.Store // Session storage; nil uses a MemoryStore
	Logger      *log.Logger   // nil discards logs
}

// SessionHeader names the request header selecting a session by ID.
const SessionHeader = "X-Session-ID"

// Server dispatches HTTP requests to stored sessions.
type Server struct {
	mu      sync.Mutex
	store   session.Store
	current string
	palette render.Palette
	export  string
	cache   cache.Cache
	logger  *log.Logger
	origins []string
}

// New creates a server whose current session is sess.
func New(sess *session.Session, opts Options) *Server {
	s := &Server{
		store:   opts.Store,
		current: sess.ID,
		palette: render.PaletteFor(string(opts.Theme)),
		export:  opts.ExportName,
		cache:   opts.Cache,
		logger:  opts.Logger,
		origins: opts.CORSOrigins,
	}
	if s.export == "" {
		s.export = config.Default().ExportName
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.store == nil {
		s.store = session.NewMemoryStore()
	}
	if err := s.store.Set(context.Background(), sess); err != nil {
		s.logger.Error("store session", "session", sess.ID, "error", err)
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(recovery(s.logger))
	r.Use(instrument(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleSession)
		r.Get("/sessions", s.handleSessions)
		r.Get("/tree", s.handleTree)
		r.Get("/export", s.handleExport)
		r.Get("/render.svg", s.handleRenderSVG)
		r.Get("/render.dot", s.handleRenderDOT)

		r.Post("/expand-all", s.handleExpandAll)
		r.Post("/collapse-all", s.handleCollapseAll)
		r.Delete("/selection", s.handleClearSelection)

		r.Route("/nodes/{id}", func(r chi.Router) {
			r.Get("/", s.handleNode)
			r.Delete("/", s.handleDelete)
			r.Post("/toggle", s.handleToggle)
			r.Put("/summary", s.handleEditSummary)
			r.Put("/label", s.handleEditLabel)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondStatus(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondStatus(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", SessionHeader},
	}).Handler(r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	go func() {
		s.logger.Info("server starting", "addr", addr, "session", current)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Replace stores sess and makes it the current session, for example after
// the source document changed on disk. The previous session is dropped from
// the store, so clients still addressing it get SESSION_NOT_FOUND. Requests
// already in flight finish against the old one.
func (s *Server) Replace(sess *session.Session) {
	ctx := context.Background()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, sess); err != nil {
		s.logger.Error("store session", "session", sess.ID, "error", err)
		return
	}
	if old := s.current; old != sess.ID {
		if err := s.store.Delete(ctx, old); err != nil {
			s.logger.Warn("drop session", "session", old, "error", err)
		}
	}
	s.current = sess.ID
	s.logger.Info("session replaced", "session", sess.ID, "source", sess.Source)
}

// Session returns the current session, or nil if the store lost it.
func (s *Server) Session() *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.store.Get(context.Background(), s.current)
	if err != nil {
		return nil
	}
	return sess
}

// withSession runs fn under the lock against the session r addresses.
func (s *Server) withSession(r *http.Request, fn func(*session.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = s.current
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return fn(sess)
}
