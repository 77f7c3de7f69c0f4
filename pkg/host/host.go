// Package host declares the capabilities the tree widget needs from the
// document it is embedded in: elements, an isolated rendering scope, click
// delivery and an optional 2D raster surface.
//
// pkg/dom provides a complete in-memory implementation.
package host

import "errors"

// ShadowMode selects whether the isolated scope is reachable from the host
// element after attachment.
type ShadowMode string

const (
	ShadowClosed ShadowMode = "closed"
	ShadowOpen   ShadowMode = "open"
)

// Errors shared by host implementations.
var (
	ErrShadowAttached = errors.New("element already hosts a shadow root")
	ErrNoCanvas       = errors.New("raster drawing is not available")
	ErrNotChild       = errors.New("node is not a child of this element")
)

// Document creates elements and, optionally, raster surfaces. A Document that
// also implements CanvasProvider offers rasterization.
type Document interface {
	CreateElement(tag string) Element
}

// Element is a node of the host document or of a shadow root.
type Element interface {
	TagName() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)

	// Parent returns nil at the top of a tree or shadow root.
	Parent() Element
	PreviousElementSibling() Element

	Checked() bool
	SetChecked(checked bool)

	AppendChild(child Element) error
	RemoveChild(child Element) error

	// SetStyle sets an inline style property; an empty value removes it.
	SetStyle(property, value string)
	ComputedStyle(property string) string

	OwnerDocument() Document
	AttachShadow(mode ShadowMode) (ShadowRoot, error)
}

// ShadowRoot is an isolated rendering scope. Styles inside it do not leak out
// and document styles do not reach in.
type ShadowRoot interface {
	Host() Element
	SetInnerHTML(markup string) error
	AddEventListener(eventType string, l Listener)
}

// Event is a dispatched UI event.
type Event interface {
	Type() string
	Target() Element
	PreventDefault()
	DefaultPrevented() bool
}

// Listener receives events delivered to the node it is attached to.
type Listener func(Event)

// Canvas is a 2D raster surface with a canvas-style path API.
type Canvas interface {
	SetFillStyle(color string) error
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Fill()
	// DataURL encodes the surface as an embeddable image reference.
	DataURL() (string, error)
}

// CanvasProvider creates raster surfaces.
type CanvasProvider interface {
	NewCanvas(width, height int) (Canvas, error)
}
