// Package page writes self-contained HTML pages that show rendered tree
// widgets. Each widget's scope content is emitted as a declarative shadow
// root, and a small embedded script installs the deselect behavior.
package page

import (
	_ "embed"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/version"
)

//go:embed assets/deselect.js
var deselectJS string

// Widget is one rendered widget placed on a page.
type Widget struct {
	// ID becomes the host element's id attribute.
	ID string
	// Mode is the shadow root mode. The deselect script can only reach open
	// roots.
	Mode host.ShadowMode
	// Content is the widget's scope markup, as painted by Reset.
	Content string
}

// Page is an HTML document holding one or more widgets.
type Page struct {
	Title string
	// FontSize is the root font size in pixels; 0 leaves the browser default.
	FontSize float64
	Widgets  []Widget
}

// Script returns the embedded deselect script.
func Script() string {
	return deselectJS
}

// Write renders the page to w.
func (p Page) Write(w io.Writer) error {
	var bodyStyle string
	if p.FontSize > 0 {
		bodyStyle = fmt.Sprintf(` style="font-size: %spx"`, strconv.FormatFloat(p.FontSize, 'f', -1, 64))
	}

	if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="generator" content="treeview %s">
<title>%s</title>
</head>
<body%s>
`, html.EscapeString(version.Version), html.EscapeString(p.Title), bodyStyle); err != nil {
		return fmt.Errorf("write page head: %w", err)
	}

	for i, wd := range p.Widgets {
		id := wd.ID
		if id == "" {
			id = fmt.Sprintf("treeview-%d", i+1)
		}
		mode := wd.Mode
		if mode == "" {
			mode = host.ShadowClosed
		}
		if mode != host.ShadowOpen {
			debug.Log("page: widget %s uses a %s root; deselect script cannot attach", id, mode)
		}
		if _, err := fmt.Fprintf(w, "<div id=\"%s\" data-treeview>\n<template shadowrootmode=\"%s\">%s</template>\n</div>\n",
			html.EscapeString(id), html.EscapeString(string(mode)), wd.Content); err != nil {
			return fmt.Errorf("write widget %s: %w", id, err)
		}
	}

	if _, err := fmt.Fprintf(w, "<script>\n%s</script>\n</body>\n</html>\n", deselectJS); err != nil {
		return fmt.Errorf("write page script: %w", err)
	}
	return nil
}
