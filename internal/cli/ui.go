package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives every status line printed by commands.
var stdout io.Writer = os.Stdout

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorErr    = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255") // bright white
	colorLabel  = lipgloss.Color("245") // gray
	colorMuted  = lipgloss.Color("240") // dim gray
)

var (
	styleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	styleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	styleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue     = lipgloss.NewStyle().Foreground(colorValue)
	styleLabel     = lipgloss.NewStyle().Foreground(colorLabel).Width(10)
	styleCommand   = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner   = lipgloss.NewStyle().Foreground(colorAccent)
	styleCached    = lipgloss.NewStyle().Foreground(colorOK)
)

// Status line markers.
var (
	markSuccess = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	markError   = lipgloss.NewStyle().Foreground(colorErr).Render("✗")
	markInfo    = lipgloss.NewStyle().Foreground(colorLabel).Render("›")
	markFile    = styleDim.Render("→")
)

func printLine(parts ...string) {
	fmt.Fprintln(stdout, strings.Join(parts, " "))
}

func printSuccess(format string, args ...any) { printLine(markSuccess, fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { printLine(markError, fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { printLine(markInfo, fmt.Sprintf(format, args...)) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	printLine(" ", styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written file.
func printFile(path string) {
	printLine(" ", markFile, styleValue.Render(path))
}

// printKeyValue prints one aligned "key value" row.
func printKeyValue(key, value string) {
	printLine(styleLabel.Render(key), styleValue.Render(value))
}

// printStats prints node counts after a render. cached is nil when no
// cache was consulted, otherwise it reports whether the SVG came from it.
func printStats(nodes, visible int, cached *bool) {
	parts := []string{
		styleDim.Render(fmtCount(nodes, "node")),
		styleDim.Render(fmt.Sprintf("%d visible", visible)),
	}
	switch {
	case cached == nil:
	case *cached:
		parts = append(parts, styleCached.Render("cached"))
	default:
		parts = append(parts, styleDim.Render("fresh"))
	}
	printLine(" ", strings.Join(parts, styleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	printLine(styleDim.Render(description+":"), styleCommand.Render(cmd))
}

// fmtCount formats n with a naively pluralized noun: "1 node", "3 nodes".
func fmtCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
