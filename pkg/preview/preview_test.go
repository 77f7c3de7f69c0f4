package preview

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/treeview/pkg/dom"
	"github.com/vanderheijden86/treeview/pkg/model"
	"github.com/vanderheijden86/treeview/pkg/treeview"
)

func widgetRoot(t *testing.T, nodes []model.Node) *dom.ShadowRoot {
	t.Helper()
	d := dom.NewDocument()
	mount := d.NewElement("div")
	if err := d.Body().AppendChild(mount); err != nil {
		t.Fatal(err)
	}
	tv, err := treeview.New(mount, treeview.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := tv.Reset(nodes); err != nil {
		t.Fatal(err)
	}
	return tv.Root().(*dom.ShadowRoot)
}

func sample() []model.Node {
	return []model.Node{
		{Name: "A", ID: "a"},
		{Name: "B", ID: "b", Open: true, Children: []model.Node{
			{Name: "B1", ID: "b1"},
			{Name: "B2", Children: []model.Node{{Name: "B2a"}}},
		}},
	}
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyCopy  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestSnapshot(t *testing.T) {
	root := widgetRoot(t, sample())
	want := strings.Join([]string{
		"  ( ) A",
		"▾ ( ) B",
		"    ( ) B1",
		"  ▸ ( ) B2",
	}, "\n") + "\n"
	if got := Snapshot(root, 0); got != want {
		t.Errorf("Snapshot =\n%s\nwant\n%s", got, want)
	}
}

func TestSnapshot_Truncates(t *testing.T) {
	root := widgetRoot(t, []model.Node{{Name: "a rather long node name"}})
	got := strings.TrimSuffix(Snapshot(root, 12), "\n")
	if !strings.HasSuffix(got, "…") {
		t.Errorf("line %q should be truncated", got)
	}
	if n := len([]rune(got)); n > 12 {
		t.Errorf("line %q is %d cells wide", got, n)
	}
}

func TestRows_FollowStyleRules(t *testing.T) {
	root := widgetRoot(t, sample())
	rows := Rows(root)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4 (B2a is collapsed)", len(rows))
	}
	if rows[2].Depth != 1 || rows[2].ID != "b1" {
		t.Errorf("row 2 = %+v", rows[2])
	}
}

func TestModel_ToggleAndExpand(t *testing.T) {
	m := New(widgetRoot(t, sample()), Options{})

	// Collapse B with space.
	m = press(t, m, keyDown, keySpace)
	if got := len(m.Rows()); got != 2 {
		t.Fatalf("rows after collapse = %d, want 2", got)
	}
	// Re-open with right, then move to B2 and expand it.
	m = press(t, m, keyRight, keyDown, keyDown, keyRight)
	if got := len(m.Rows()); got != 5 {
		t.Fatalf("rows after expand = %d, want 5", got)
	}
	// Left collapses B2 again.
	m = press(t, m, keyLeft)
	if got := len(m.Rows()); got != 4 {
		t.Fatalf("rows after left = %d, want 4", got)
	}
	// Space on a leaf does nothing.
	m = press(t, m, keyUp, keySpace)
	if got := len(m.Rows()); got != 4 {
		t.Errorf("space on leaf changed rows: %d", got)
	}
}

func TestModel_SelectDeselectCopy(t *testing.T) {
	var copied []string
	m := New(widgetRoot(t, sample()), Options{}).WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	})

	m = press(t, m, keyCopy)
	if m.Status() != "nothing selected" {
		t.Errorf("status = %q", m.Status())
	}

	m = press(t, m, keyEnter)
	if sel, ok := m.Selected(); !ok || sel.ID != "a" {
		t.Fatalf("selected = %+v, %v", sel, ok)
	}
	m = press(t, m, keyCopy)
	if len(copied) != 1 || copied[0] != "a" || m.Status() != "copied a" {
		t.Errorf("copied = %v, status %q", copied, m.Status())
	}

	// Selecting B moves the selection; Enter on B again clears it.
	m = press(t, m, keyDown, keyEnter)
	if sel, _ := m.Selected(); sel.ID != "b" {
		t.Errorf("selected = %q, want b", sel.ID)
	}
	m = press(t, m, keyEnter)
	if _, ok := m.Selected(); ok {
		t.Error("second enter should deselect")
	}
}

func TestModel_CopyErrors(t *testing.T) {
	m := New(widgetRoot(t, []model.Node{{Name: "noid", Active: true}, {Name: "x", ID: "x"}}), Options{})
	m = press(t, m, keyCopy)
	if !strings.Contains(m.Status(), "has no id") {
		t.Errorf("status = %q", m.Status())
	}

	m = m.WithClipboard(func(string) error { return errors.New("no display") })
	m = press(t, m, keyDown, keyEnter, keyCopy)
	if !strings.Contains(m.Status(), "clipboard unavailable") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_CursorClamps(t *testing.T) {
	m := New(widgetRoot(t, sample()), Options{})
	m = press(t, m, keyUp, keyUp)
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d", m.Cursor())
	}
	m = press(t, m, keyDown, keyDown, keyDown, keyDown, keyDown)
	if m.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor())
	}
	// Collapsing B keeps the cursor in range.
	m = press(t, m, keyUp, keyUp, keySpace)
	if m.Cursor() >= len(m.Rows()) {
		t.Errorf("cursor %d out of %d rows", m.Cursor(), len(m.Rows()))
	}
}

func TestModel_ExpandAll(t *testing.T) {
	m := New(widgetRoot(t, sample()), Options{ExpandAll: true})
	if got := len(m.Rows()); got != 5 {
		t.Errorf("rows = %d, want every node", got)
	}
}

func TestModel_ViewAndQuit(t *testing.T) {
	m := New(widgetRoot(t, sample()), Options{Title: "Demo", ShowIDs: true})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"Demo", "A #a", "B #b", "↑/k up"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
	// Height 5 leaves room for two rows.
	if strings.Contains(view, "B1") {
		t.Errorf("view should scroll, got:\n%s", view)
	}

	if _, cmd := m.Update(keyQuit); cmd == nil {
		t.Error("q should quit")
	}
}

func TestModel_Empty(t *testing.T) {
	m := New(widgetRoot(t, nil), Options{})
	m = press(t, m, keyDown, keyEnter, keySpace)
	if !strings.Contains(m.View(), "(empty)") {
		t.Error("empty tree should say so")
	}
}
