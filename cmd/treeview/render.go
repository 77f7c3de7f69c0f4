package main

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/treeview/internal/nodesource"
	"github.com/vanderheijden86/treeview/pkg/config"
	"github.com/vanderheijden86/treeview/pkg/dom"
	"github.com/vanderheijden86/treeview/pkg/model"
	"github.com/vanderheijden86/treeview/pkg/page"
	"github.com/vanderheijden86/treeview/pkg/raster"
	"github.com/vanderheijden86/treeview/pkg/treeview"
)

// rendered is one node source painted into its own widget.
type rendered struct {
	source nodesource.Source
	nodes  []model.Node
	widget *treeview.Treeview
	root   *dom.ShadowRoot
}

// widgetID derives a stable element id from the source path.
func (r rendered) widgetID(i int) string {
	if r.source.Path == nodesource.Stdin {
		return fmt.Sprintf("treeview-%d", i+1)
	}
	base := strings.TrimSuffix(filepath.Base(r.source.Path), filepath.Ext(r.source.Path))
	return "treeview-" + base
}

// renderer loads and paints node sources with one configuration.
type renderer struct {
	cfg    config.Config
	strict bool
	load   func(path string) ([]model.Node, nodesource.Source, error)
}

// renderOne loads path and paints it into a fresh document and widget.
func (rd renderer) renderOne(path string) (rendered, error) {
	nodes, src, err := rd.load(path)
	if err != nil {
		return rendered{}, err
	}
	if rd.strict {
		if err := model.Validate(nodes); err != nil {
			return rendered{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	doc := dom.NewDocument(
		dom.WithCanvas(raster.PNG{}),
		dom.WithRootFontSize(rd.cfg.Render.HostFontSize),
	)
	mount := doc.NewElement("div")
	if err := doc.Body().AppendChild(mount); err != nil {
		return rendered{}, fmt.Errorf("%s: mount: %w", path, err)
	}
	tv, err := treeview.New(mount, rd.cfg.Widget)
	if err != nil {
		return rendered{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := tv.Reset(nodes); err != nil {
		return rendered{}, fmt.Errorf("%s: %w", path, err)
	}
	root, ok := tv.Root().(*dom.ShadowRoot)
	if !ok {
		return rendered{}, fmt.Errorf("%s: unexpected shadow root %T", path, tv.Root())
	}
	return rendered{source: src, nodes: nodes, widget: tv, root: root}, nil
}

// renderAll paints every path concurrently, each into its own document.
// Results keep the order of paths.
func (rd renderer) renderAll(ctx context.Context, paths []string) ([]rendered, error) {
	out := make([]rendered, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := rd.renderOne(path)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildPage places rendered widgets on one page.
func buildPage(cfg config.Config, items []rendered) page.Page {
	p := page.Page{Title: cfg.Render.Title, FontSize: cfg.Render.HostFontSize}
	for i, r := range items {
		p.Widgets = append(p.Widgets, page.Widget{
			ID:      r.widgetID(i),
			Mode:    r.widget.Options().ShadowMode,
			Content: r.root.InnerHTML(),
		})
	}
	return p
}
