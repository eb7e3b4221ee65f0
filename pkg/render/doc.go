// Package render draws the visible part of a mindmap.
//
// # Overview
//
// Rendering always starts from a [github.com/matzehuels/mindmap/pkg/mindmap.View],
// the derived sequence of visible nodes and edges. Renderers never walk the
// tree themselves, so hidden subtrees cannot leak into the output.
//
// This package holds what the renderers share: the color [Palette] for each
// theme and the output [Format] names. The renderers live in subpackages:
//
//   - [nodelink]: Graphviz DOT and SVG diagrams (left-to-right tree)
//
// The terminal browser in internal/cli draws its own outline but takes its
// colors from the same palettes.
//
// # Colors
//
// Nodes with hidden children are drawn in [Palette.Collapsed] (green), all
// other nodes in [Palette.Node] (indigo), matching in both themes. Only the
// canvas, text and edge colors change between light and dark.
//
//	p := render.PaletteFor("dark")
//	dot := nodelink.ToDOT(view, nodelink.Options{Palette: p})
package render
