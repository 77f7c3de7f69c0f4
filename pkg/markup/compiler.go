// Package markup compiles a node forest into the nested list markup of the
// tree widget.
//
// Each node becomes one list item holding, in order, a disclosure checkbox,
// a label wrapping a selection radio and the node's text, and a nested list
// with the node's children:
//
//	<li>
//	  <input type="checkbox" class="has-children" checked>
//	  <label><input type="radio" name="GROUP" data-id="ID"><span contenteditable="false">NAME</span></label>
//	  <ul>...children...</ul>
//	</li>
//
// All radios share one group name, so the host's native single-choice
// semantics keep at most one node selected at any depth.
package markup

import (
	"html"
	"strings"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/metrics"
	"github.com/vanderheijden86/treeview/pkg/model"
	"github.com/vanderheijden86/treeview/pkg/stylesheet"
)

// IDAttr is the attribute carrying a node's id on its selection radio.
const IDAttr = "data-id"

// Compiler turns forests into markup for one selection group.
type Compiler struct {
	group string

	cache    map[uint64]string
	useCache bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithFragmentCache memoizes the markup of each root node across compiles,
// keyed by a structural hash of the node. Output is identical either way.
func WithFragmentCache(enabled bool) Option {
	return func(c *Compiler) {
		c.useCache = enabled
	}
}

// NewCompiler returns a Compiler whose radios all belong to group.
func NewCompiler(group string, opts ...Option) *Compiler {
	c := &Compiler{group: group}
	for _, opt := range opts {
		opt(c)
	}
	if c.useCache {
		c.cache = make(map[uint64]string)
	}
	return c
}

// Group returns the selection group name.
func (c *Compiler) Group() string {
	return c.group
}

// Document compiles the forest wrapped in its top-level <ul>.
func (c *Compiler) Document(nodes []model.Node) string {
	return "<ul>" + c.Compile(nodes) + "</ul>"
}

// Compile returns the list items of the forest, depth-first, pre-order.
func (c *Compiler) Compile(nodes []model.Node) string {
	defer metrics.Timer(metrics.MarkupCompile)()

	var b strings.Builder
	if !c.useCache {
		c.writeNodes(&b, nodes)
		return b.String()
	}

	next := make(map[uint64]string, len(nodes))
	for i := range nodes {
		key, err := hashstructure.Hash(nodes[i], hashstructure.FormatV2, nil)
		if err != nil {
			debug.Log("markup: hash root %d: %v", i, err)
			c.writeNode(&b, &nodes[i])
			continue
		}
		frag, ok := next[key]
		if !ok {
			frag, ok = c.cache[key]
		}
		if ok {
			metrics.FragmentCache.Hit()
		} else {
			metrics.FragmentCache.Miss()
			var fb strings.Builder
			c.writeNode(&fb, &nodes[i])
			frag = fb.String()
		}
		next[key] = frag
		b.WriteString(frag)
	}
	// Only fragments used by this compile survive.
	c.cache = next
	return b.String()
}

// CacheLen returns the number of memoized root fragments.
func (c *Compiler) CacheLen() int {
	return len(c.cache)
}

func (c *Compiler) writeNodes(b *strings.Builder, nodes []model.Node) {
	for i := range nodes {
		c.writeNode(b, &nodes[i])
	}
}

func (c *Compiler) writeNode(b *strings.Builder, n *model.Node) {
	b.WriteString(`<li><input type="checkbox"`)
	if n.HasChildren() {
		b.WriteString(` class="` + stylesheet.HasChildrenClass + `"`)
	}
	if n.Open {
		b.WriteString(` checked`)
	}
	b.WriteString(`><label><input type="radio" name="`)
	b.WriteString(html.EscapeString(c.group))
	b.WriteByte('"')
	if n.ID != "" {
		b.WriteString(` ` + IDAttr + `="`)
		b.WriteString(html.EscapeString(n.ID))
		b.WriteByte('"')
	}
	if n.Active {
		b.WriteString(` checked`)
	}
	b.WriteString(`><span contenteditable="false">`)
	b.WriteString(html.EscapeString(n.Name))
	b.WriteString(`</span></label><ul>`)
	c.writeNodes(b, n.Children)
	b.WriteString(`</ul></li>`)
}
