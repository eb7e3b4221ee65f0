// Package nodelink renders mindmaps as node-link diagrams.
//
// # Overview
//
// This package produces tree diagrams with Graphviz: each visible node is a
// filled circle with its label beside it, and lines connect parents to their
// visible children. The tree grows left to right from the root.
//
// # Usage
//
// Convert the current view to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(tree.Render(), nodelink.Options{Selected: "a"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [RenderSVGCached] puts a [github.com/matzehuels/mindmap/pkg/cache.Cache]
// in front of Graphviz; the HTTP server and the render command use it.
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Palette: colors for the light or dark theme
//   - Selected: node to outline
//   - Summaries: add short summaries as hover tooltips
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//
// Collapsed nodes (those with hidden children) are filled green, every other
// node indigo.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
