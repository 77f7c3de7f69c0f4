// Package preview shows a rendered tree widget in the terminal.
//
// The terminal acts as the widget's host: rows are read back from the
// widget's in-memory shadow root, visibility comes from evaluating the
// widget's own style rules, and every key press is turned into a click on
// the rendered controls. Expansion and selection therefore behave exactly as
// they would in a browser.
package preview

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/treeview/pkg/dom"
	"github.com/vanderheijden86/treeview/pkg/markup"
)

// Row is one visible node.
type Row struct {
	Depth       int
	Name        string
	ID          string
	HasChildren bool
	Open        bool
	Selected    bool

	toggle *dom.Element
	radio  *dom.Element
	span   *dom.Element
}

// Rows returns the nodes currently displayed in root, in document order.
func Rows(root *dom.ShadowRoot) []Row {
	items, err := root.QuerySelectorAll("li")
	if err != nil {
		return nil
	}
	var rows []Row
	for _, li := range items {
		r, ok := rowOf(li)
		if !ok || !root.Displayed(r.span) {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

func rowOf(li *dom.Element) (Row, bool) {
	var r Row
	for _, c := range li.Children() {
		switch c.TagName() {
		case "input":
			r.toggle = c
		case "label":
			for _, lc := range c.Children() {
				switch lc.TagName() {
				case "input":
					r.radio = lc
				case "span":
					r.span = lc
				}
			}
		}
	}
	if r.toggle == nil || r.radio == nil || r.span == nil {
		return r, false
	}
	r.Name = r.span.TextContent()
	r.ID, _ = r.radio.Attr(markup.IDAttr)
	r.HasChildren = r.toggle.HasClass("has-children")
	r.Open = r.toggle.Checked()
	r.Selected = r.radio.Checked()
	for p := li.Parent(); p != nil; p = p.Parent() {
		if p.TagName() == "li" {
			r.Depth++
		}
	}
	return r, true
}

// Glyph returns the disclosure marker of the row.
func (r Row) Glyph() string {
	switch {
	case !r.HasChildren:
		return " "
	case r.Open:
		return "▾"
	default:
		return "▸"
	}
}

// Line renders the row as plain text of at most width cells; width <= 0
// disables truncation.
func (r Row) Line(width int, showID bool) string {
	mark := "( )"
	if r.Selected {
		mark = "(•)"
	}
	line := strings.Repeat("  ", r.Depth) + r.Glyph() + " " + mark + " " + r.Name
	if showID && r.ID != "" {
		line += " #" + r.ID
	}
	return truncate(line, width)
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Snapshot renders the visible rows of root as plain text, one per line.
func Snapshot(root *dom.ShadowRoot, width int) string {
	var b strings.Builder
	for _, r := range Rows(root) {
		b.WriteString(r.Line(width, false))
		b.WriteByte('\n')
	}
	return b.String()
}
