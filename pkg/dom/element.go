package dom

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"golang.org/x/net/html"

	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/units"
)

// Element wraps an element node of a Document. Wrappers are unique per node,
// so *Element values compare by identity.
type Element struct {
	doc       *Document
	node      *html.Node
	shadow    *ShadowRoot
	listeners map[string][]host.Listener
}

var _ host.Element = (*Element)(nil)

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// Attr returns the value of an attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// HasClass reports whether the class attribute contains class.
func (e *Element) HasClass(class string) bool {
	v, _ := e.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) parentElement() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Parent implements host.Element. It is nil for top-level nodes of a shadow
// root and for the document root.
func (e *Element) Parent() host.Element {
	if p := e.parentElement(); p != nil {
		return p
	}
	return nil
}

func (e *Element) previousElement() *Element {
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return e.doc.wrap(s)
		}
	}
	return nil
}

// PreviousElementSibling implements host.Element.
func (e *Element) PreviousElementSibling() host.Element {
	if s := e.previousElement(); s != nil {
		return s
	}
	return nil
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// TextContent returns the concatenated text of all descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

func (e *Element) inputType() string {
	if e.node.Data != "input" {
		return ""
	}
	t, _ := e.Attr("type")
	return strings.ToLower(t)
}

// Checked reports the checkedness of a checkbox or radio.
func (e *Element) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

// SetChecked sets checkedness. Checking a radio unchecks every other radio
// with the same name in the same tree.
func (e *Element) SetChecked(checked bool) {
	if !checked {
		e.RemoveAttr("checked")
		return
	}
	e.SetAttr("checked", "")
	if e.inputType() == "radio" {
		e.uncheckGroup()
	}
}

func (e *Element) uncheckGroup() {
	name, ok := e.Attr("name")
	if !ok || name == "" {
		return
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n != e.node && n.Type == html.ElementNode && n.Data == "input" {
			other := e.doc.wrap(n)
			if other.inputType() == "radio" {
				if v, _ := other.Attr("name"); v == name {
					other.RemoveAttr("checked")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(top(e.node))
}

func (e *Element) asElement(child host.Element) (*Element, error) {
	c, ok := child.(*Element)
	if !ok || c.doc != e.doc {
		return nil, fmt.Errorf("foreign node %T", child)
	}
	return c, nil
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child host.Element) error {
	c, err := e.asElement(child)
	if err != nil {
		return err
	}
	for p := e.node; p != nil; p = p.Parent {
		if p == c.node {
			return fmt.Errorf("append %s to its own descendant", c.TagName())
		}
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
	return nil
}

// RemoveChild detaches child from e.
func (e *Element) RemoveChild(child host.Element) error {
	c, err := e.asElement(child)
	if err != nil {
		return err
	}
	if c.node.Parent != e.node {
		return host.ErrNotChild
	}
	e.node.RemoveChild(c.node)
	return nil
}

// Attached reports whether the element is connected to its document, either
// directly or through a shadow root whose host is connected.
func (e *Element) Attached() bool {
	t := top(e.node)
	if t == e.doc.node {
		return true
	}
	if s, ok := e.doc.scopes[t]; ok {
		return s.host.Attached()
	}
	return false
}

// SetStyle sets an inline style property; an empty value removes it.
func (e *Element) SetStyle(property, value string) {
	property = strings.ToLower(strings.TrimSpace(property))
	style, _ := e.Attr("style")
	decls := parseInline(style)

	out := decls[:0]
	for _, d := range decls {
		if d.Property != property {
			out = append(out, d)
		}
	}
	if v := strings.TrimSpace(value); v != "" {
		out = append(out, &css.Declaration{Property: property, Value: v})
	}
	if len(out) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", formatInline(out))
}

// declared returns the cascaded value of prop: the last valid inline
// declaration first, then the last valid matching rule of the element's
// style scope.
func (e *Element) declared(prop string) (string, bool) {
	style, _ := e.Attr("style")
	var (
		inline string
		found  bool
	)
	for _, d := range parseInline(style) {
		if d.Property == prop && validDeclaration(prop, d.Value) {
			inline, found = d.Value, true
		}
	}
	if found {
		return inline, true
	}
	return e.doc.sheetFor(e.node).declared(e.node, prop)
}

// inheritParent returns the element values inherit from: the parent element,
// the shadow host for top-level scope nodes, or nil at the document root.
func (e *Element) inheritParent() *Element {
	if p := e.parentElement(); p != nil {
		return p
	}
	if s := e.doc.scopeOf(e.node); s != nil {
		return s.host
	}
	return nil
}

// ComputedStyle returns the computed value of a property. font-size is
// always an absolute pixel length.
func (e *Element) ComputedStyle(property string) string {
	property = strings.ToLower(property)
	if property == "font-size" {
		return units.Px(e.FontSizePx()).String()
	}
	if v, ok := e.declared(property); ok && v != "inherit" {
		return v
	}
	if inherited[property] {
		if p := e.inheritParent(); p != nil {
			return p.ComputedStyle(property)
		}
	}
	return initial[property]
}

// FontSizePx returns the computed font size in pixels. Declarations that do
// not resolve to a valid font size are ignored and the parent's size is
// inherited.
func (e *Element) FontSizePx() float64 {
	parentPx := e.doc.rootFontSize
	if p := e.inheritParent(); p != nil {
		parentPx = p.FontSizePx()
	}
	v, ok := e.declared("font-size")
	if !ok {
		return parentPx
	}
	l, err := units.Parse(v)
	if err != nil {
		return parentPx
	}
	px, ok := l.Resolve(parentPx, e.doc.rootFontSize)
	if !ok {
		return parentPx
	}
	return px
}

// OwnerDocument implements host.Element.
func (e *Element) OwnerDocument() host.Document {
	return e.doc
}

// Document returns the concrete owner document.
func (e *Element) Document() *Document {
	return e.doc
}

// AttachShadow creates the element's shadow root. An element hosts at most
// one shadow root.
func (e *Element) AttachShadow(mode host.ShadowMode) (host.ShadowRoot, error) {
	if e.shadow != nil {
		return nil, host.ErrShadowAttached
	}
	if mode == "" {
		mode = host.ShadowClosed
	}
	s := &ShadowRoot{
		host:      e,
		mode:      mode,
		container: &html.Node{Type: html.DocumentNode},
	}
	e.doc.scopes[s.container] = s
	e.shadow = s
	return s, nil
}

// ShadowRoot returns the element's shadow root when it was attached in open
// mode, matching Element.shadowRoot in browsers.
func (e *Element) ShadowRoot() *ShadowRoot {
	if e.shadow == nil || e.shadow.mode != host.ShadowOpen {
		return nil
	}
	return e.shadow
}

// AddEventListener registers a listener on the element.
func (e *Element) AddEventListener(eventType string, l host.Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]host.Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], l)
}
