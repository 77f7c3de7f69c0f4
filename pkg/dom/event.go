package dom

import (
	"golang.org/x/net/html"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/host"
)

// Event is a dispatched event.
type Event struct {
	typ       string
	target    *Element
	prevented bool
	stopped   bool
}

var _ host.Event = (*Event)(nil)

func (ev *Event) Type() string            { return ev.typ }
func (ev *Event) PreventDefault()         { ev.prevented = true }
func (ev *Event) DefaultPrevented() bool  { return ev.prevented }
func (ev *Event) StopPropagation()        { ev.stopped = true }
func (ev *Event) Target() host.Element    { return ev.target }
func (ev *Event) TargetElement() *Element { return ev.target }

// Dispatch delivers an event to the target, its ancestors, and, for nodes
// inside a shadow root, the root itself. Propagation stops at the root.
// It returns the event so callers can inspect DefaultPrevented.
func (e *Element) Dispatch(eventType string) *Event {
	ev := &Event{typ: eventType, target: e}
	for n := e.node; n != nil && !ev.stopped; n = n.Parent {
		if n.Type == html.ElementNode {
			for _, l := range e.doc.wrap(n).listeners[eventType] {
				l(ev)
			}
			continue
		}
		if s := e.doc.scopes[n]; s != nil {
			for _, l := range s.listeners[eventType] {
				l(ev)
			}
		}
	}
	return ev
}

// Click dispatches a click on e and then runs activation behavior unless a
// listener prevented the default:
//
//   - checkbox: toggles
//   - radio: becomes checked, unchecking its group
//   - inside a <label>: the label's first <input> is clicked
//
// Listeners observe the state from before activation.
func (e *Element) Click() *Event {
	ev := e.Dispatch("click")
	if ev.prevented {
		debug.Log("dom: click on <%s> default prevented", e.TagName())
		return ev
	}
	if control := e.activationTarget(); control != nil {
		switch control.inputType() {
		case "checkbox":
			control.SetChecked(!control.Checked())
		case "radio":
			control.SetChecked(true)
		}
		return ev
	}
	if label := e.closest("label"); label != nil {
		if control := label.firstInput(); control != nil {
			control.Click()
		}
	}
	return ev
}

// activationTarget returns the nearest checkbox or radio at or above e.
func (e *Element) activationTarget() *Element {
	for p := e; p != nil; p = p.parentElement() {
		if t := p.inputType(); t == "checkbox" || t == "radio" {
			return p
		}
	}
	return nil
}

func (e *Element) closest(tag string) *Element {
	for p := e; p != nil; p = p.parentElement() {
		if p.TagName() == tag {
			return p
		}
	}
	return nil
}

func (e *Element) firstInput() *Element {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "input" {
				found = c
				return
			}
			walk(c)
		}
	}
	walk(e.node)
	if found == nil {
		return nil
	}
	return e.doc.wrap(found)
}
