package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/session"
)

func testDoc() *mindmap.Document {
	return &mindmap.Document{
		ID: "r", Label: "Root", ShortSummary: "The root",
		Children: []*mindmap.Document{
			{ID: "a", Label: "A", LongSummary: "About A", Children: []*mindmap.Document{
				{ID: "b", Label: "B"},
				{ID: "c", Label: "C"},
			}},
			{ID: "d", Label: "D", ShortSummary: "short d"},
		},
	}
}

type browseRecorder struct {
	copied   []string
	exported []string
	themes   []config.Theme
}

func newTestModel(t *testing.T) (browseModel, *browseRecorder) {
	t.Helper()
	sess, err := session.Open(testDoc(), "test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rec := &browseRecorder{}
	m := newBrowseModel(sess, browseOptions{
		Theme:      config.ThemeLight,
		ExportPath: "out.json",
		Copy: func(s string) error {
			rec.copied = append(rec.copied, s)
			return nil
		},
		Export: func(doc *mindmap.Document, path string) error {
			rec.exported = append(rec.exported, path)
			return nil
		},
		SaveTheme: func(th config.Theme) error {
			rec.themes = append(rec.themes, th)
			return nil
		},
	})
	return m, rec
}

func press(t *testing.T, m browseModel, keys ...tea.KeyMsg) browseModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		if m, ok = next.(browseModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func rowIDs(m browseModel) string {
	ids := make([]string, len(m.rows))
	for i, r := range m.rows {
		ids[i] = r.ID
	}
	return strings.Join(ids, ",")
}

func TestBrowseInitialRows(t *testing.T) {
	m, _ := newTestModel(t)
	if got := rowIDs(m); got != "r,a,d" {
		t.Errorf("rows = %q, want r,a,d", got)
	}
	if m.cursorID() != "r" {
		t.Errorf("cursor on %q, want r", m.cursorID())
	}
}

func TestBrowseToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, keyDown, keyEnter)
	if got := rowIDs(m); got != "r,a,b,c,d" {
		t.Errorf("after expand rows = %q", got)
	}
	if m.sess.SelectedID() != "a" {
		t.Errorf("selected = %q, want a", m.sess.SelectedID())
	}
	if m.cursorID() != "a" {
		t.Errorf("cursor moved to %q", m.cursorID())
	}

	m = press(t, m, keyEnter)
	if got := rowIDs(m); got != "r,a,d" {
		t.Errorf("after collapse rows = %q", got)
	}
}

func TestBrowseCursorBounds(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after moving up from top", m.cursor)
	}
	m = press(t, m, runes("G"), runes("j"))
	if m.cursorID() != "d" {
		t.Errorf("cursor on %q, want d", m.cursorID())
	}
	m = press(t, m, runes("g"))
	if m.cursorID() != "r" {
		t.Errorf("cursor on %q, want r", m.cursorID())
	}
}

func TestBrowseSelection(t *testing.T) {
	m, _ := newTestModel(t)

	if md := detailMarkdown(m.sess); !strings.Contains(md, noSelectionTitle) {
		t.Errorf("placeholder missing: %q", md)
	}

	m = press(t, m, keyDown, keyDown, keySpace)
	if m.sess.SelectedID() != "d" {
		t.Fatalf("selected = %q, want d", m.sess.SelectedID())
	}
	if got := rowIDs(m); got != "r,a,d" {
		t.Errorf("select changed rows: %q", got)
	}
	if md := detailMarkdown(m.sess); !strings.Contains(md, noDetailedSummary) {
		t.Errorf("detail for d = %q", md)
	}

	m = press(t, m, keyEsc)
	if m.sess.SelectedID() != "" {
		t.Errorf("esc left selection %q", m.sess.SelectedID())
	}
}

func TestBrowseDeleteRootRefused(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("d"))
	if m.mode != modeBrowse {
		t.Errorf("mode = %d, want browse", m.mode)
	}
	if m.message != "Root node cannot be deleted." || !m.messageErr {
		t.Errorf("message = %q (err=%v)", m.message, m.messageErr)
	}
	if m.sess.Tree().Len() != 5 {
		t.Errorf("tree has %d nodes", m.sess.Tree().Len())
	}
}

func TestBrowseDeleteConfirm(t *testing.T) {
	tests := []struct {
		name    string
		answer  tea.KeyMsg
		wantLen int
		wantMsg string
	}{
		{"confirm", runes("y"), 2, "Node deleted"},
		{"decline", runes("n"), 5, "Delete cancelled"},
		{"escape", keyEsc, 5, "Delete cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m = press(t, m, keyDown, keySpace, runes("d"))
			if m.mode != modeConfirmDelete {
				t.Fatalf("mode = %d, want confirm", m.mode)
			}
			m = press(t, m, tt.answer)
			if m.mode != modeBrowse {
				t.Errorf("mode = %d after answer", m.mode)
			}
			if got := m.sess.Tree().Len(); got != tt.wantLen {
				t.Errorf("tree has %d nodes, want %d", got, tt.wantLen)
			}
			if m.message != tt.wantMsg {
				t.Errorf("message = %q, want %q", m.message, tt.wantMsg)
			}
		})
	}
}

func TestBrowseDeleteClearsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyDown, keySpace, runes("d"), runes("y"))
	if m.sess.SelectedID() != "" {
		t.Errorf("selection %q survived delete", m.sess.SelectedID())
	}
	if got := rowIDs(m); got != "r,d" {
		t.Errorf("rows = %q", got)
	}
	if m.cursor >= len(m.rows) {
		t.Errorf("cursor %d out of range", m.cursor)
	}
}

func TestBrowseEditSummary(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyDown, keyDown, runes("e"))
	if m.mode != modeEdit || m.editing != "d" {
		t.Fatalf("mode = %d editing = %q", m.mode, m.editing)
	}

	m = press(t, m, runes("  fresh text  "), keySave)
	if m.mode != modeBrowse {
		t.Errorf("mode = %d after save", m.mode)
	}
	n, _ := m.sess.Tree().Node("d")
	if n.LongSummary != "fresh text" {
		t.Errorf("LongSummary = %q, want trimmed text", n.LongSummary)
	}
	if m.message != "Summary saved" {
		t.Errorf("message = %q", m.message)
	}
}

func TestBrowseEditCancel(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyDown, runes("e"), runes(" more"), keyEsc)
	if m.mode != modeBrowse {
		t.Errorf("mode = %d after esc", m.mode)
	}
	n, _ := m.sess.Tree().Node("a")
	if n.LongSummary != "About A" {
		t.Errorf("LongSummary = %q, cancel must not save", n.LongSummary)
	}
}

func TestBrowseExpandCollapseAll(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("E"))
	if got := rowIDs(m); got != "r,a,b,c,d" {
		t.Errorf("after E rows = %q", got)
	}
	m = press(t, m, runes("G"), runes("C"))
	if got := rowIDs(m); got != "r" {
		t.Errorf("after C rows = %q", got)
	}
	if m.cursorID() != "r" {
		t.Errorf("cursor on %q after collapse", m.cursorID())
	}
}

func TestBrowseSideEffects(t *testing.T) {
	m, rec := newTestModel(t)

	m = press(t, m, runes("x"))
	if len(rec.exported) != 1 || rec.exported[0] != "out.json" {
		t.Errorf("exported = %v", rec.exported)
	}
	if m.message != "Exported to out.json" {
		t.Errorf("message = %q", m.message)
	}

	m = press(t, m, runes("y"))
	if len(rec.copied) != 1 || rec.copied[0] != "The root" {
		t.Errorf("copied = %v, want short summary fallback", rec.copied)
	}

	m = press(t, m, keyDown, runes("y"))
	if len(rec.copied) != 2 || rec.copied[1] != "About A" {
		t.Errorf("copied = %v", rec.copied)
	}

	m = press(t, m, runes("t"))
	if m.theme != config.ThemeDark || len(rec.themes) != 1 || rec.themes[0] != config.ThemeDark {
		t.Errorf("theme = %q saved %v", m.theme, rec.themes)
	}
	m = press(t, m, runes("t"))
	if m.theme != config.ThemeLight {
		t.Errorf("theme = %q after second toggle", m.theme)
	}
}

func TestBrowseExportError(t *testing.T) {
	m, _ := newTestModel(t)
	m.opts.Export = func(*mindmap.Document, string) error { return errors.New("disk full") }
	m = press(t, m, runes("x"))
	if !m.messageErr || !strings.Contains(m.message, "disk full") {
		t.Errorf("message = %q (err=%v)", m.message, m.messageErr)
	}
}

func TestBrowseNothingToCopy(t *testing.T) {
	m, rec := newTestModel(t)
	m = press(t, m, runes("E"), keyDown, keyDown, runes("y"))
	if m.cursorID() != "b" {
		t.Fatalf("cursor on %q, want b", m.cursorID())
	}
	if len(rec.copied) != 0 || m.message != "Nothing to copy" {
		t.Errorf("copied = %v message = %q", rec.copied, m.message)
	}
}

func TestBrowseStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyDown)
	if got := m.viewStatus(); !strings.Contains(got, noSummary) {
		t.Errorf("status for a = %q, want %q", got, noSummary)
	}
	m = press(t, m, keyDown)
	if got := m.viewStatus(); !strings.Contains(got, "short d") {
		t.Errorf("status for d = %q", got)
	}
}

func TestBrowseQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestBrowseView(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(browseModel)
	out := m.View()
	for _, want := range []string{"Root", "▸ A", "• D"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		node mindmap.VisibleNode
		want string
	}{
		{mindmap.VisibleNode{Leaf: true}, "•"},
		{mindmap.VisibleNode{Collapsed: true}, "▸"},
		{mindmap.VisibleNode{}, "▾"},
	}
	for _, tt := range tests {
		if got := glyph(tt.node); got != tt.want {
			t.Errorf("glyph(%+v) = %q, want %q", tt.node, got, tt.want)
		}
	}
}
