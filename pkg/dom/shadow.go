package dom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vanderheijden86/treeview/pkg/host"
)

// ShadowRoot is an isolated subtree attached to a host element.
type ShadowRoot struct {
	host      *Element
	mode      host.ShadowMode
	container *html.Node
	listeners map[string][]host.Listener

	sheet *sheet // nil until the first style lookup after a content change
}

var _ host.ShadowRoot = (*ShadowRoot)(nil)

// Host implements host.ShadowRoot.
func (s *ShadowRoot) Host() host.Element {
	return s.host
}

// Mode returns the mode the root was attached with.
func (s *ShadowRoot) Mode() host.ShadowMode {
	return s.mode
}

// SetInnerHTML replaces the entire content of the root.
func (s *ShadowRoot) SetInnerHTML(markup string) error {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("parse shadow content: %w", err)
	}
	for c := s.container.FirstChild; c != nil; {
		next := c.NextSibling
		s.container.RemoveChild(c)
		s.host.doc.forget(c)
		c = next
	}
	for _, n := range nodes {
		s.container.AppendChild(n)
	}
	s.sheet = nil
	return nil
}

// InnerHTML serializes the current content of the root.
func (s *ShadowRoot) InnerHTML() string {
	var b strings.Builder
	for c := s.container.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// AddEventListener registers a listener on the root. It receives every event
// dispatched inside the root, after listeners on the target's ancestors.
func (s *ShadowRoot) AddEventListener(eventType string, l host.Listener) {
	if s.listeners == nil {
		s.listeners = make(map[string][]host.Listener)
	}
	s.listeners[eventType] = append(s.listeners[eventType], l)
}

// QuerySelectorAll returns all elements in the root matching sel, in
// document order.
func (s *ShadowRoot) QuerySelectorAll(sel string) ([]*Element, error) {
	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", sel, err)
	}
	var out []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && m.Match(c) {
				out = append(out, s.host.doc.wrap(c))
			}
			walk(c)
		}
	}
	walk(s.container)
	return out, nil
}

// QuerySelector returns the first element matching sel, or nil.
func (s *ShadowRoot) QuerySelector(sel string) (*Element, error) {
	all, err := s.QuerySelectorAll(sel)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// styles returns the compiled rules of every <style> element in the root.
func (s *ShadowRoot) styles() *sheet {
	if s.sheet != nil {
		return s.sheet
	}
	s.sheet = &sheet{}
	if text := styleText(s.container); text != "" {
		// Unparsable style text applies no rules, as in a browser.
		_ = s.sheet.add(text)
	}
	return s.sheet
}

// Displayed reports whether e is painted: it is not hidden itself and no
// ancestor inside the root collapses it (display:none, or height:0 with
// overflow:hidden).
func (s *ShadowRoot) Displayed(e *Element) bool {
	if s.host.doc.scopeOf(e.node) != s {
		return false
	}
	if e.ComputedStyle("visibility") == "hidden" || e.ComputedStyle("display") == "none" {
		return false
	}
	for p := e.parentElement(); p != nil; p = p.parentElement() {
		if p.ComputedStyle("display") == "none" {
			return false
		}
		if isZero(p.ComputedStyle("height")) && p.ComputedStyle("overflow") == "hidden" {
			return false
		}
	}
	return true
}

func isZero(v string) bool {
	switch strings.TrimSpace(v) {
	case "0", "0px", "0em", "0%":
		return true
	}
	return false
}
