package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/dom"
	"github.com/vanderheijden86/treeview/pkg/raster"
)

// Options configures the preview.
type Options struct {
	Title string
	// Width fixes the render width; 0 follows the terminal.
	Width int
	// Highlight is the background of the selected row.
	Highlight string
	ShowIDs   bool
	// ExpandAll opens every collapsed node before the first frame.
	ExpandAll bool
	// Mouse enables wheel scrolling.
	Mouse bool
}

type styles struct {
	title    lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
}

func newStyles(highlight string) styles {
	bg := lipgloss.Color("#DDDDDD")
	if c, err := raster.ParseColor(highlight); err == nil {
		bg = lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}),
		cursor:   lipgloss.NewStyle().Reverse(true),
		selected: lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#1A1A1A")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}),
		help:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}),
	}
}

// chromeLines is the number of lines taken by the title, status and help.
const chromeLines = 3

// Model is the bubbletea model of the preview.
type Model struct {
	root   *dom.ShadowRoot
	opts   Options
	styles styles

	rows   []Row
	cursor int
	offset int
	width  int
	height int
	status string

	copy func(string) error
}

// New returns a preview of root.
func New(root *dom.ShadowRoot, opts Options) Model {
	m := Model{
		root:   root,
		opts:   opts,
		styles: newStyles(opts.Highlight),
		width:  opts.Width,
		copy:   clipboard.WriteAll,
	}
	if opts.ExpandAll {
		m.expandAll()
	}
	m.refresh()
	return m
}

// WithClipboard replaces the clipboard writer.
func (m Model) WithClipboard(fn func(string) error) Model {
	m.copy = fn
	return m
}

// Rows returns the rows currently shown.
func (m Model) Rows() []Row { return m.rows }

// Cursor returns the index of the row under the cursor.
func (m Model) Cursor() int { return m.cursor }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

// Selected returns the selected row, if any row is selected.
func (m Model) Selected() (Row, bool) {
	for _, r := range Rows(m.root) {
		if r.Selected {
			return r, true
		}
	}
	return Row{}, false
}

func (m *Model) expandAll() {
	for {
		opened := false
		for _, r := range Rows(m.root) {
			if r.HasChildren && !r.Open {
				r.toggle.Click()
				opened = true
			}
		}
		if !opened {
			return
		}
	}
}

func (m *Model) refresh() {
	m.rows = Rows(m.root)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

func (m *Model) scroll() {
	page := m.height - chromeLines
	if page <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.refresh()
}

func (m Model) current() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.opts.Width == 0 {
			m.width = msg.Width
		}
		m.height = msg.Height
		m.scroll()

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.move(-1)
		case tea.MouseButtonWheelDown:
			m.move(1)
		}

	case tea.KeyMsg:
		m.status = ""
		row, ok := m.current()
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.move(-1)
		case key.Matches(msg, keys.Down):
			m.move(1)
		case key.Matches(msg, keys.Top):
			m.cursor = 0
			m.refresh()
		case key.Matches(msg, keys.Bottom):
			m.cursor = len(m.rows) - 1
			m.refresh()
		case key.Matches(msg, keys.Toggle):
			if ok && row.HasChildren {
				row.toggle.Click()
				m.refresh()
			}
		case key.Matches(msg, keys.Expand):
			if ok && row.HasChildren && !row.Open {
				row.toggle.Click()
				m.refresh()
			}
		case key.Matches(msg, keys.Collapse):
			if ok && row.HasChildren && row.Open {
				row.toggle.Click()
				m.refresh()
			}
		case key.Matches(msg, keys.Select):
			if ok {
				row.span.Click()
				m.refresh()
			}
		case key.Matches(msg, keys.Copy):
			m.copySelected()
		}
	}
	return m, nil
}

func (m *Model) copySelected() {
	sel, ok := m.Selected()
	switch {
	case !ok:
		m.status = "nothing selected"
	case sel.ID == "":
		m.status = fmt.Sprintf("%q has no id", sel.Name)
	default:
		if err := m.copy(sel.ID); err != nil {
			debug.Log("preview: clipboard: %v", err)
			m.status = "clipboard unavailable: " + err.Error()
			return
		}
		m.status = "copied " + sel.ID
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "treeview"
	}
	b.WriteString(m.styles.title.Render(truncate(title, m.width)))
	b.WriteByte('\n')

	end := len(m.rows)
	if page := m.height - chromeLines; page > 0 && m.offset+page < end {
		end = m.offset + page
	}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		line := r.Line(m.width, m.opts.ShowIDs)
		switch {
		case i == m.cursor:
			line = m.styles.cursor.Render(line)
		case r.Selected:
			line = m.styles.selected.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(m.rows) == 0 {
		b.WriteString(m.styles.help.Render("(empty)"))
		b.WriteByte('\n')
	}

	b.WriteString(m.styles.status.Render(m.status))
	b.WriteByte('\n')
	var help []string
	for _, k := range keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(m.styles.help.Render(truncate(strings.Join(help, " • "), m.width)))
	return b.String()
}

// Run starts an interactive preview and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, root *dom.ShadowRoot, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(New(root, opts), progOpts...).Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
