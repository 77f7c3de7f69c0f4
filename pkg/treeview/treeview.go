// Package treeview is an embeddable, style-isolated tree widget.
//
// A Treeview owns a shadow root attached to its mount element. Reset replaces
// the whole root content with a freshly generated style block and the
// compiled node markup; expansion and selection then live entirely in the
// checked state of the rendered controls.
//
//	doc := dom.NewDocument(dom.WithCanvas(raster.PNG{}))
//	mount := doc.NewElement("div")
//	_ = doc.Body().AppendChild(mount)
//	tv, err := treeview.New(mount, treeview.Options{FontSize: "20"})
//	if err != nil {
//		return err
//	}
//	err = tv.Reset([]model.Node{{Name: "A"}, {Name: "B", Open: true, Children: []model.Node{{Name: "B1"}}}})
package treeview

import (
	"fmt"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/icon"
	"github.com/vanderheijden86/treeview/pkg/markup"
	"github.com/vanderheijden86/treeview/pkg/metrics"
	"github.com/vanderheijden86/treeview/pkg/model"
	"github.com/vanderheijden86/treeview/pkg/raster"
	"github.com/vanderheijden86/treeview/pkg/stylesheet"
)

// Treeview is a tree widget mounted on one host element. It is not safe for
// concurrent use; independent widgets are.
type Treeview struct {
	opts     Resolved
	root     host.ShadowRoot
	compiler *markup.Compiler
}

// New resolves opts against mount, derives the folder icon unless one was
// supplied, attaches the shadow root and installs the deselect listener.
//
// A missing raster capability is not an error: the icon is left empty. The
// only failure is a mount that already hosts a shadow root.
func New(mount host.Element, opts Options) (*Treeview, error) {
	defer debug.LogEnterExit("treeview.New")()

	r := ResolveOptions(mount, opts)
	if r.FolderImageData == "" {
		r.FolderImageData = icon.Folder(canvasProvider(mount, r.IconFormat), r.FontPx, r.FolderImageColor)
	}

	root, err := mount.AttachShadow(r.ShadowMode)
	if err != nil {
		return nil, fmt.Errorf("attach shadow root: %w", err)
	}
	root.AddEventListener("click", DeselectListener)

	debug.Log("treeview: new widget group=%s font=%s icon=%d bytes", r.GroupName, r.FontSize, len(r.FolderImageData))
	return &Treeview{
		opts:     r,
		root:     root,
		compiler: markup.NewCompiler(r.GroupName, markup.WithFragmentCache(r.CacheFragments)),
	}, nil
}

// canvasProvider picks the raster backend for the icon. SVG output needs no
// host support; PNG uses the host document's canvas if it has one.
func canvasProvider(mount host.Element, format string) host.CanvasProvider {
	if format == IconSVG {
		return raster.SVG{}
	}
	if p, ok := mount.OwnerDocument().(host.CanvasProvider); ok {
		return p
	}
	return nil
}

// Render returns the markup Reset would paint for nodes.
func (t *Treeview) Render(nodes []model.Node) string {
	style := stylesheet.Generate(stylesheet.Params{
		FontSize:       t.opts.FontSize,
		FolderImage:    t.opts.FolderImageData,
		HighlightColor: t.opts.HighlightColor,
	})
	return style + t.opts.AddonCSS + t.compiler.Document(nodes)
}

// Reset replaces everything rendered in the widget with nodes. Expansion and
// selection made since the previous Reset are discarded. nodes is not
// retained and is not validated.
func (t *Treeview) Reset(nodes []model.Node) error {
	defer metrics.Timer(metrics.Reset)()

	if err := t.root.SetInnerHTML(t.Render(nodes)); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	debug.Log("treeview: reset %s with %d nodes", t.opts.GroupName, model.Count(nodes))
	return nil
}

// Options returns the resolved options.
func (t *Treeview) Options() Resolved {
	return t.opts
}

// Root returns the widget's shadow root, including closed ones.
func (t *Treeview) Root() host.ShadowRoot {
	return t.root
}
