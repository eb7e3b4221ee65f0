package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/errors"
	pkgio "github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render"
	"github.com/matzehuels/mindmap/pkg/session"
)

// Messages shown when a node has no text of its own.
const (
	noSummary         = "No summary"
	noDetailedSummary = "No detailed summary available."
	noSelectionTitle  = "Select a node"
	noSelectionHint   = "Press enter or space on any node to see details."
)

// =============================================================================
// Styles
// =============================================================================

// browseStyles holds the lipgloss styles derived from one palette.
type browseStyles struct {
	node      lipgloss.Style
	collapsed lipgloss.Style
	cursor    lipgloss.Style
	selected  lipgloss.Style
	muted     lipgloss.Style
	text      lipgloss.Style
	panel     lipgloss.Style
	status    lipgloss.Style
	errText   lipgloss.Style
	okText    lipgloss.Style
}

func newBrowseStyles(p render.Palette) browseStyles {
	return browseStyles{
		node:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Node)),
		collapsed: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Collapsed)),
		cursor:    lipgloss.NewStyle().Bold(true).Reverse(true),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Selected)),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		text:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Muted)).
			Padding(0, 1),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		errText: lipgloss.NewStyle().Foreground(colorErr),
		okText:  lipgloss.NewStyle().Foreground(colorOK),
	}
}

// =============================================================================
// browseModel - Interactive mindmap browser
// =============================================================================

// browseMode is what the keyboard currently drives.
type browseMode int

const (
	modeBrowse        browseMode = iota // moving over the outline
	modeEdit                            // typing in the summary editor
	modeConfirmDelete                   // waiting for y/n
)

// browseOptions configures a browseModel.
type browseOptions struct {
	Theme      config.Theme
	ExportPath string

	// Side effects, injected so tests can observe them.
	SaveTheme func(config.Theme) error
	Copy      func(string) error
	Export    func(*mindmap.Document, string) error
}

// browseModel is the bubbletea model behind the browse command. Every key
// press is one event dispatched to the session; the outline is rebuilt from
// the session's render after each event.
type browseModel struct {
	sess *session.Session
	opts browseOptions

	rows   []mindmap.VisibleNode
	cursor int
	offset int

	width, height int

	mode     browseMode
	pending  string // node awaiting delete confirmation
	editing  string // node whose summary is being edited
	editor   textarea.Model
	detail   viewport.Model
	renderer *glamour.TermRenderer

	theme  config.Theme
	styles browseStyles

	message    string
	messageErr bool
}

// newBrowseModel creates a browser over sess.
func newBrowseModel(sess *session.Session, opts browseOptions) browseModel {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Export == nil {
		opts.Export = pkgio.ExportFile
	}
	if opts.SaveTheme == nil {
		opts.SaveTheme = func(config.Theme) error { return nil }
	}
	if opts.ExportPath == "" {
		opts.ExportPath = pkgio.DefaultExportName
	}

	ta := textarea.New()
	ta.Placeholder = "Long summary (markdown)"
	ta.ShowLineNumbers = false
	ta.CharLimit = errors.MaxSummaryLength

	m := browseModel{
		sess:   sess,
		opts:   opts,
		width:  100,
		height: 30,
		editor: ta,
		detail: viewport.New(40, 20),
	}
	m.applyTheme(opts.Theme)
	m.refresh()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.updateDetail()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg), nil
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m browseModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.rows) - 1

	case "enter":
		m.dispatch(m.sess.Activate(m.cursorID()))
	case " ", "space":
		m.dispatch(m.sess.Select(m.cursorID()))
	case "esc":
		m.sess.ClearSelection()
		m.refresh()

	case "E":
		m.sess.ExpandAll()
		m.refresh()
	case "C":
		m.sess.CollapseAll()
		m.refresh()

	case "e":
		return m.startEdit()
	case "d":
		m.startDelete()

	case "x":
		m.export()
	case "y":
		m.copySummary()
	case "t":
		m.toggleTheme()
	}

	m.scroll()
	return m, nil
}

func (m browseModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.editor.Blur()
		m.setMessage("Edit cancelled", false)
		return m, nil
	case "ctrl+s":
		m.mode = modeBrowse
		m.editor.Blur()
		if err := m.sess.EditSummary(m.editing, m.editor.Value()); err != nil {
			m.setMessage(errors.UserMessage(err), true)
		} else {
			m.setMessage("Summary saved", false)
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m browseModel) updateConfirm(msg tea.KeyMsg) browseModel {
	m.mode = modeBrowse
	switch msg.String() {
	case "y", "Y":
		if err := m.sess.Delete(m.pending); err != nil {
			m.setMessage(errors.UserMessage(err), true)
		} else {
			m.setMessage("Node deleted", false)
		}
		m.refresh()
	default:
		m.setMessage("Delete cancelled", false)
	}
	m.pending = ""
	return m
}

// target is the node acted on by edit, delete and copy: the selection, or
// the node under the cursor when nothing is selected.
func (m *browseModel) target() string {
	if id := m.sess.SelectedID(); id != "" {
		return id
	}
	return m.cursorID()
}

func (m browseModel) startEdit() (tea.Model, tea.Cmd) {
	id := m.target()
	n, err := m.sess.Node(id)
	if err != nil {
		m.setMessage(errors.UserMessage(err), true)
		return m, nil
	}
	_ = m.sess.Select(id)
	m.editing = id
	m.mode = modeEdit
	m.editor.SetValue(n.LongSummary)
	m.refresh()
	cmd := m.editor.Focus()
	return m, cmd
}

func (m *browseModel) startDelete() {
	id := m.target()
	if m.sess.Tree().IsRoot(id) {
		m.setMessage("Root node cannot be deleted.", true)
		return
	}
	n, err := m.sess.Node(id)
	if err != nil {
		m.setMessage(errors.UserMessage(err), true)
		return
	}
	m.pending = id
	m.mode = modeConfirmDelete
	m.setMessage(fmt.Sprintf("Delete %q and everything below it? (y/n)", n.Label), false)
}

func (m *browseModel) export() {
	path := m.opts.ExportPath
	if err := m.opts.Export(m.sess.Export(), path); err != nil {
		m.setMessage("Export failed: "+err.Error(), true)
		return
	}
	m.setMessage("Exported to "+path, false)
}

func (m *browseModel) copySummary() {
	n, err := m.sess.Node(m.target())
	if err != nil {
		m.setMessage(errors.UserMessage(err), true)
		return
	}
	text := n.LongSummary
	if text == "" {
		text = n.ShortSummary
	}
	if text == "" {
		m.setMessage("Nothing to copy", true)
		return
	}
	if err := m.opts.Copy(text); err != nil {
		m.setMessage("Copy failed: "+err.Error(), true)
		return
	}
	m.setMessage("Copied summary of "+n.Label, false)
}

func (m *browseModel) toggleTheme() {
	next := m.theme.Toggle()
	m.applyTheme(next)
	if err := m.opts.SaveTheme(next); err != nil {
		m.setMessage("Theme not saved: "+err.Error(), true)
		return
	}
	m.setMessage("Theme: "+string(next), false)
}

// dispatch reports err, if any, and redraws.
func (m *browseModel) dispatch(err error) {
	if err != nil {
		m.setMessage(errors.UserMessage(err), true)
	}
	m.refresh()
}

func (m *browseModel) setMessage(msg string, isErr bool) {
	m.message, m.messageErr = msg, isErr
}

// =============================================================================
// State Sync
// =============================================================================

// refresh rebuilds the outline from the session, keeping the cursor on the
// same node when it is still visible.
func (m *browseModel) refresh() {
	prev := m.cursorID()

	m.rows = slices.Collect(m.sess.Render().Nodes())

	m.cursor = min(m.cursor, len(m.rows)-1)
	for i, r := range m.rows {
		if r.ID == prev {
			m.cursor = i
			break
		}
	}
	m.scroll()
	m.updateDetail()
}

func (m *browseModel) cursorID() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].ID
}

// scroll keeps the cursor inside the visible window of rows.
func (m *browseModel) scroll() {
	h := m.treeHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(m.offset, 0)
}

func (m *browseModel) applyTheme(t config.Theme) {
	if t == "" {
		t = config.ThemeLight
	}
	m.theme = t
	m.styles = newBrowseStyles(render.PaletteFor(string(t)))
	m.resize()
	m.updateDetail()
}

func (m *browseModel) resize() {
	pw := m.panelWidth()
	ph := max(m.height-4, 3)
	m.detail.Width = pw
	m.detail.Height = ph
	m.editor.SetWidth(pw)
	m.editor.SetHeight(ph - 2)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(string(m.theme)),
		glamour.WithWordWrap(pw),
	)
	if err == nil {
		m.renderer = r
	}
}

func (m *browseModel) treeHeight() int { return max(m.height-3, 1) }
func (m *browseModel) treeWidth() int  { return max(m.width*11/20, 20) }
func (m *browseModel) panelWidth() int { return max(m.width-m.treeWidth()-4, 20) }

// updateDetail renders the side panel for the selected node.
func (m *browseModel) updateDetail() {
	if m.sess == nil {
		return
	}
	m.detail.SetContent(m.renderMarkdown(detailMarkdown(m.sess)))
	m.detail.GotoTop()
}

func (m *browseModel) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return fmt.Sprintf("Error rendering markdown: %v", err)
	}
	return out
}

// detailMarkdown is the side panel content for the current selection.
func detailMarkdown(sess *session.Session) string {
	n, ok := sess.Selected()
	if !ok {
		return "## " + noSelectionTitle + "\n\n" + noSelectionHint + "\n"
	}
	body := n.LongSummary
	if body == "" {
		body = "_" + noDetailedSummary + "_"
	}
	return "## " + n.Label + "\n\n" + body + "\n"
}

// =============================================================================
// View
// =============================================================================

func (m browseModel) View() string {
	tree := lipgloss.NewStyle().Width(m.treeWidth()).Render(m.viewTree())

	var panel string
	if m.mode == modeEdit {
		panel = m.editor.View()
	} else {
		panel = m.detail.View()
	}
	panel = m.styles.panel.Width(m.panelWidth() + 2).Render(panel)

	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, panel)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewStatus(), m.viewHelp())
}

func (m browseModel) viewTree() string {
	var b strings.Builder
	end := min(m.offset+m.treeHeight(), len(m.rows))
	selected := m.sess.SelectedID()

	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		line := strings.Repeat("  ", r.Depth) + glyph(r) + " " + r.Label

		style := m.styles.node
		if r.Collapsed {
			style = m.styles.collapsed
		}
		if r.ID == selected {
			style = m.styles.selected
		}
		if i == m.cursor {
			style = style.Inherit(m.styles.cursor)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// glyph marks a row as collapsed, expanded or leaf.
func glyph(n mindmap.VisibleNode) string {
	switch {
	case n.Leaf:
		return "•"
	case n.Collapsed:
		return "▸"
	default:
		return "▾"
	}
}

// viewStatus shows a pending message, or the hovered node's short summary
// like a tooltip.
func (m browseModel) viewStatus() string {
	if m.message != "" {
		if m.messageErr {
			return m.styles.errText.Render(m.message)
		}
		return m.styles.okText.Render(m.message)
	}
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	r := m.rows[m.cursor]
	summary := r.ShortSummary
	if summary == "" {
		summary = noSummary
	}
	return m.styles.text.Bold(true).Render(r.Label) + m.styles.status.Render(" · "+summary)
}

func (m browseModel) viewHelp() string {
	var help string
	switch m.mode {
	case modeEdit:
		help = "ctrl+s save  esc cancel"
	case modeConfirmDelete:
		help = "y delete  n cancel"
	default:
		help = "↑/↓ move  ⏎ toggle  space select  e edit  d delete  E/C expand/collapse all  x export  y copy  t theme  q quit"
	}
	return m.styles.muted.Render(help)
}
