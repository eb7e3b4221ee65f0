package render

import (
	"fmt"
	"slices"
	"strings"
)

// Format names an output format accepted by the render command and API.
type Format string

// Output formats.
const (
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// Formats lists every supported output format.
var Formats = []Format{FormatDOT, FormatSVG, FormatJSON}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unsupported format %q (want dot, svg or json)", s)
	}
	return f, nil
}

// Palette holds the colors used to draw one theme. Values are hex RGB
// strings usable by both Graphviz and lipgloss.
type Palette struct {
	Name string

	Canvas    string // Background
	Text      string // Labels
	Muted     string // Secondary text and borders
	Edge      string // Parent-child connectors
	Node      string // Fill for expanded nodes and leaves
	Collapsed string // Fill for nodes with hidden children
	Selected  string // Outline of the selected node
}

// Node colors shared by both themes.
const (
	NodeColor      = "#4f46e5"
	CollapsedColor = "#16a34a"
)

// Light is the default palette.
var Light = Palette{
	Name:      "light",
	Canvas:    "#ffffff",
	Text:      "#1f2937",
	Muted:     "#6b7280",
	Edge:      "#9ca3af",
	Node:      NodeColor,
	Collapsed: CollapsedColor,
	Selected:  "#f59e0b",
}

// Dark is the palette for dark terminals and pages.
var Dark = Palette{
	Name:      "dark",
	Canvas:    "#111827",
	Text:      "#e5e7eb",
	Muted:     "#9ca3af",
	Edge:      "#4b5563",
	Node:      NodeColor,
	Collapsed: CollapsedColor,
	Selected:  "#fbbf24",
}

// PaletteFor returns the palette for a theme name, falling back to [Light]
// for anything other than "dark".
func PaletteFor(theme string) Palette {
	if strings.EqualFold(theme, Dark.Name) {
		return Dark
	}
	return Light
}

// Fill returns the node fill for a node that is (or is not) collapsed.
func (p Palette) Fill(collapsed bool) string {
	if collapsed {
		return p.Collapsed
	}
	return p.Node
}
