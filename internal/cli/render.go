package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/session"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path; empty writes to stdout
	format    string // dot, svg or json
	theme     string // light or dark; empty uses the configured theme
	expandAll bool   // render every node instead of the initial view
	noCache   bool   // bypass the on-disk SVG cache
}

// renderCommand creates the render command for one-shot diagram output.
//
// Without --expand-all the diagram shows the initial view: the root with its
// direct children. The json format writes the render sequence itself.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: string(render.FormatSVG)}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a mindmap to DOT, SVG or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, json")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: light or dark (default from config)")
	cmd.Flags().BoolVar(&opts.expandAll, "expand-all", false, "expand every node before rendering")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the SVG render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	theme := cfg.Theme
	if opts.theme != "" {
		if theme, err = config.ParseTheme(opts.theme); err != nil {
			return err
		}
	}

	sess, err := c.openSession(path)
	if err != nil {
		return err
	}
	if opts.expandAll {
		sess.ExpandAll()
	}

	var cached *bool
	data, err := renderSession(sess, format, render.PaletteFor(string(theme)), func(dot string) ([]byte, error) {
		rc := c.newCache(opts.noCache)
		defer rc.Close()

		key := cache.RenderKey(string(render.FormatSVG), []byte(dot))
		hit := false
		cached = &hit
		if data, ok, err := rc.Get(ctx, key); err == nil && ok {
			hit = true
			return data, nil
		}

		sp := newSpinner(ctx, os.Stderr, "Laying out diagram...")
		sp.Start()
		svg, err := nodelink.RenderSVG(ctx, dot)
		sp.Stop()
		if err != nil {
			return nil, err
		}
		if err := rc.Set(ctx, key, svg, cache.DefaultTTL); err != nil {
			c.Logger.Warn("cache write failed", "error", err)
		}
		return svg, nil
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	printSuccess("Rendered %s", format)
	printFile(opts.output)
	printStats(sess.Tree().Len(), sess.Render().Len(), cached)
	return nil
}

// renderSession produces the output bytes for one format. svg turns DOT into
// SVG so callers can plug in caching and progress display.
func renderSession(sess *session.Session, format render.Format, p render.Palette, svg func(dot string) ([]byte, error)) ([]byte, error) {
	switch format {
	case render.FormatJSON:
		return viewJSON(sess)
	case render.FormatDOT:
		return []byte(nodelink.ToDOT(sess.Render(), nodelink.Options{Palette: p})), nil
	case render.FormatSVG:
		return svg(nodelink.ToDOT(sess.Render(), nodelink.Options{Palette: p, Summaries: true}))
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// renderedNode is the JSON form of one visible node.
type renderedNode struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	ShortSummary string `json:"shortSummary,omitempty"`
	Depth        int    `json:"depth"`
	Collapsed    bool   `json:"collapsed"`
	Leaf         bool   `json:"leaf"`
}

func viewJSON(sess *session.Session) ([]byte, error) {
	nodes := []renderedNode{}
	for n := range sess.Render().Nodes() {
		nodes = append(nodes, renderedNode{
			ID:           n.ID,
			Label:        n.Label,
			ShortSummary: n.ShortSummary,
			Depth:        n.Depth,
			Collapsed:    n.Collapsed,
			Leaf:         n.Leaf,
		})
	}
	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
