// Package stylesheet generates the style block that drives the tree's
// expand/collapse and selection visuals.
//
// All interactive state lives in the checked state of the rendered controls;
// the rules below only react to it through structural selectors:
//
//   - a disclosure checkbox rotates its icon when checked
//   - an unchecked disclosure checkbox collapses the sibling <ul>
//   - a checked selection radio highlights the adjacent <span>
package stylesheet

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/treeview/pkg/metrics"
	"github.com/vanderheijden86/treeview/pkg/raster"
	"github.com/vanderheijden86/treeview/pkg/units"
)

const (
	// DefaultHighlightColor is the background of hovered and selected labels.
	DefaultHighlightColor = "#DDDDDD"
	// Indent is the inline padding of each nested list.
	Indent = "20px"
	// HasChildrenClass marks disclosure controls of nodes with children.
	HasChildrenClass = "has-children"
)

// Params are the resolved values interpolated into the style block.
type Params struct {
	FontSize       units.Length
	FolderImage    string
	HighlightColor string
}

// Generate returns the complete <style> element.
func Generate(p Params) string {
	defer metrics.Timer(metrics.StyleGenerate)()

	size := p.FontSize
	if !size.IsAbsolute() {
		size = units.Px(units.DefaultFontSize)
	}
	highlight := p.HighlightColor
	if !raster.ValidColor(highlight) {
		highlight = DefaultHighlightColor
	}
	image := "none"
	if p.FolderImage != "" {
		image = "url(" + QuoteString(p.FolderImage) + ")"
	}

	var b strings.Builder
	b.WriteString("<style>\n")
	rule(&b, "ul",
		"font-size: "+size.String(),
		"height: auto",
		"visibility: visible",
		"overflow: hidden",
		"margin: 0",
		"padding-inline-start: "+Indent,
	)
	rule(&b, "li",
		"list-style-type: none",
		"position: relative",
	)
	rule(&b, "label",
		"cursor: pointer",
	)
	rule(&b, "input",
		"-webkit-appearance: none",
		"-moz-appearance: none",
		"appearance: none",
		"margin: 0",
	)
	rule(&b, `input[type="checkbox"]`,
		"position: absolute",
		"outline: none",
	)
	rule(&b, `input[type="checkbox"]:not(.`+HasChildrenClass+`)`,
		"pointer-events: none",
	)
	rule(&b, `input[type="checkbox"].`+HasChildrenClass+`::before`,
		"content: ''",
		"cursor: pointer",
		"position: absolute",
		"left: "+size.Negate().String(),
		"width: "+size.String(),
		"height: "+size.String(),
		"background-image: "+image,
		"background-repeat: no-repeat",
		"transition: transform 0.2s 0s ease",
	)
	rule(&b, `input[type="checkbox"].`+HasChildrenClass+`:checked::before`,
		"transform: rotate(90deg)",
	)
	rule(&b, `input[type="checkbox"].`+HasChildrenClass+`:not(:checked) ~ ul`,
		"height: 0",
		"visibility: hidden",
	)
	rule(&b, `input[type="radio"]`,
		"position: absolute",
		"opacity: 0",
		"width: 0",
		"height: 0",
	)
	rule(&b, `input[type="radio"] + span:hover,
input[type="radio"]:checked + span`,
		"background-color: "+highlight,
	)
	b.WriteString("</style>")
	return b.String()
}

func rule(b *strings.Builder, selector string, decls ...string) {
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range decls {
		fmt.Fprintf(b, "  %s;\n", d)
	}
	b.WriteString("}\n")
}

// QuoteString returns s as a double-quoted CSS string. Backslashes, quotes
// and line breaks are escaped, and "<" is written as a hex escape so the
// value cannot close the surrounding <style> element.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\a `)
		case '\r':
			b.WriteString(`\d `)
		case '\f':
			b.WriteString(`\c `)
		case '<':
			b.WriteString(`\3c `)
		case 0:
			b.WriteString(`\fffd `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
