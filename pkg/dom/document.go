// Package dom is an in-memory host document for the tree widget, built on
// golang.org/x/net/html.
//
// It implements the pkg/host capabilities with enough browser behavior to
// exercise the widget end to end:
//
//   - shadow roots are isolated style scopes: only <style> elements inside a
//     root apply to it, and document style sheets never reach into it
//   - computed font sizes follow CSS inheritance, across the shadow boundary
//   - Click dispatches a bubbling event and then runs native activation for
//     checkboxes, radios and labels unless the default was prevented
//   - Displayed evaluates the scope's rules to tell whether a node is painted
//
// Cascading is simplified: among matching rules the last one in source order
// wins, inline styles win over rules, and dynamic pseudo-classes (:hover,
// :focus, :active) and pseudo-elements never match.
package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/units"
)

// Document is an in-memory host document.
type Document struct {
	node *html.Node
	body *html.Node

	rootFontSize float64
	canvas       host.CanvasProvider
	sheet        *sheet

	wrappers map[*html.Node]*Element
	scopes   map[*html.Node]*ShadowRoot
}

// Option configures a Document.
type Option func(*Document)

// WithCanvas gives the document a raster capability. Without it NewCanvas
// fails with host.ErrNoCanvas.
func WithCanvas(p host.CanvasProvider) Option {
	return func(d *Document) {
		d.canvas = p
	}
}

// WithRootFontSize sets the computed font size of the document root in
// pixels. The default is units.DefaultFontSize.
func WithRootFontSize(px float64) Option {
	return func(d *Document) {
		if px > 0 {
			d.rootFontSize = px
		}
	}
}

// NewDocument returns an empty <html><body></body></html> document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		rootFontSize: units.DefaultFontSize,
		sheet:        &sheet{},
		wrappers:     make(map[*html.Node]*Element),
		scopes:       make(map[*html.Node]*ShadowRoot),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.node = &html.Node{Type: html.DocumentNode}
	root := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	head := &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
	d.body = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	d.node.AppendChild(root)
	root.AppendChild(head)
	root.AppendChild(d.body)
	return d
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.wrap(d.body)
}

// RootFontSize returns the root computed font size in pixels.
func (d *Document) RootFontSize() float64 {
	return d.rootFontSize
}

// CreateElement implements host.Document.
func (d *Document) CreateElement(tag string) host.Element {
	return d.NewElement(tag)
}

// NewElement creates a detached element.
func (d *Document) NewElement(tag string) *Element {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	return d.wrap(n)
}

// NewCanvas implements host.CanvasProvider.
func (d *Document) NewCanvas(width, height int) (host.Canvas, error) {
	if d.canvas == nil {
		return nil, host.ErrNoCanvas
	}
	return d.canvas.NewCanvas(width, height)
}

// AddStyleSheet adds document-level CSS. It applies to the document tree
// only, never to shadow root content.
func (d *Document) AddStyleSheet(css string) error {
	return d.sheet.add(css)
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if e, ok := d.wrappers[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.wrappers[n] = e
	return e
}

// forget drops wrappers for a detached subtree that can no longer be
// reached.
func (d *Document) forget(n *html.Node) {
	delete(d.wrappers, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

// top returns the topmost ancestor of n.
func top(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// scopeOf returns the shadow root containing n, or nil for document nodes.
func (d *Document) scopeOf(n *html.Node) *ShadowRoot {
	return d.scopes[top(n)]
}

// sheetFor returns the style rules that apply to n.
func (d *Document) sheetFor(n *html.Node) *sheet {
	if s := d.scopeOf(n); s != nil {
		return s.styles()
	}
	if top(n) == d.node {
		return d.sheet
	}
	return nil
}
