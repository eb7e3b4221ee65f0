package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/internal/server"
	"github.com/matzehuels/mindmap/pkg/cache"
	pkgio "github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/session"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address, overrides config
	noCache bool   // disable the SVG cache
	watch   bool   // reload the document when the file changes
}

// serveCommand creates the serve command, which exposes a session over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a mindmap over an HTTP API",
		Long: `Serve loads the document and exposes it over a JSON API until interrupted.

Every request is one user event (toggle, edit, delete, expand all, ...). The
rendered SVG is available at /api/render.svg and the current document at
/api/export.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, localhost:8080)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the SVG render cache")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the document when the file changes (discards in-memory edits)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, path string, opts serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}

	sess, err := c.openSession(path)
	if err != nil {
		return err
	}

	var renderCache cache.Cache = cache.NewNullCache()
	if !opts.noCache {
		renderCache = cache.Instrument(cache.NewMemoryCache(256), "svg")
	}
	defer renderCache.Close()

	srv := server.New(sess, server.Options{
		Theme:       cfg.Theme,
		CORSOrigins: cfg.CORSOrigins,
		ExportName:  cfg.ExportName,
		Cache:       renderCache,
		Store:       session.NewMemoryStore(),
		Logger:      loggerFromContext(cmd.Context()),
	})

	printInfo("Serving %s", styleHighlight.Render(path))
	printKeyValue("API", styleLink.Render("http://"+cfg.Addr+"/api/tree"))
	printKeyValue("Diagram", styleLink.Render("http://"+cfg.Addr+"/api/render.svg"))
	printDetail("Press Ctrl+C to stop")

	if opts.watch {
		go c.watchSource(cmd.Context(), path, srv)
	}

	return srv.ListenAndServe(cmd.Context(), cfg.Addr)
}

// watchSource reloads path into a fresh session whenever it changes. A
// document that no longer loads leaves the current session in place.
func (c *CLI) watchSource(ctx context.Context, path string, srv *server.Server) {
	logger := loggerFromContext(ctx)
	err := pkgio.Watch(ctx, path, pkgio.DefaultDebounce, func() {
		sess, err := c.openSession(path)
		if err != nil {
			logger.Warn("reload failed, keeping previous document", "path", path, "error", err)
			return
		}
		srv.Replace(sess)
	})
	if err != nil {
		logger.Error("watch stopped", "path", path, "error", err)
	}
}
