package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Palette supplies the colors. The zero value means [render.Light].
	Palette render.Palette

	// Selected is the ID of the node to outline, or "" for none.
	Selected string

	// Summaries adds each node's short summary as a hover tooltip.
	Summaries bool
}

// ToDOT converts the visible part of a mindmap to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes are emitted in pre-order, so the diagram keeps document order among
// siblings. Every node gets an SVG id of the form "node-<id>".
func ToDOT(v *mindmap.View, opts Options) string {
	p := opts.Palette
	if p.Name == "" {
		p = render.Light
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", p.Canvas)
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=0.5, label=\"\", color=%q, fontsize=12, fontcolor=%q];\n", p.Canvas, p.Text)
	fmt.Fprintf(&buf, "  edge [arrowhead=none, color=%q];\n", p.Edge)
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for n := range v.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, p, opts), ", "))
	}

	buf.WriteString("\n")
	for e := range v.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n mindmap.VisibleNode, p render.Palette, opts Options) []string {
	attrs := []string{
		fmt.Sprintf("id=%q", "node-"+n.ID),
		fmt.Sprintf("xlabel=%q", n.Label),
		fmt.Sprintf("fillcolor=%q", p.Fill(n.Collapsed)),
	}
	if opts.Summaries && n.ShortSummary != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.ShortSummary))
	}
	if n.ID == opts.Selected {
		attrs = append(attrs, fmt.Sprintf("color=%q", p.Selected), "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderSVGCached is [RenderSVG] behind c. Cache failures are not fatal; the
// diagram is rendered directly instead.
func RenderSVGCached(ctx context.Context, c cache.Cache, dot string) ([]byte, error) {
	key := cache.RenderKey(string(render.FormatSVG), []byte(dot))
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	_ = c.Set(ctx, key, svg, cache.DefaultTTL)
	return svg, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root tag with one whose viewBox starts
// at the origin, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
