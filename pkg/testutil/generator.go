// Package testutil provides forest fixtures and markup assertions for tests.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanderheijden86/treeview/pkg/model"
)

// ForestFixture is a named forest with its expected shape, the format used
// by testdata/forests/*.json files.
type ForestFixture struct {
	Description string       `json:"description"`
	Nodes       []model.Node `json:"nodes"`
	Properties  Properties   `json:"properties,omitempty"`
}

// Properties holds the expected shape of a fixture.
type Properties struct {
	Count int `json:"count"`
	Depth int `json:"depth"`
}

// GeneratorConfig controls forest generation.
type GeneratorConfig struct {
	Seed     int64   // Random seed for determinism (0 = use current time)
	IDPrefix string  // Prefix for node IDs (default: "n")
	OpenRate float64 // Probability that a parent node is open
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42, // Deterministic
		IDPrefix: "n",
		OpenRate: 0.5,
	}
}

// Generator creates forest fixtures with various shapes.
type Generator struct {
	cfg  GeneratorConfig
	rng  *rand.Rand
	next int
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "n"
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

func (g *Generator) node() model.Node {
	g.next++
	id := fmt.Sprintf("%s%d", g.cfg.IDPrefix, g.next)
	return model.Node{Name: "Node " + id, ID: id}
}

// Chain creates a single path of size nodes: each node is the only child of
// the previous one. Depth = size.
func (g *Generator) Chain(size int) ForestFixture {
	var build func(remaining int) []model.Node
	build = func(remaining int) []model.Node {
		if remaining == 0 {
			return nil
		}
		n := g.node()
		n.Children = build(remaining - 1)
		n.Open = n.HasChildren() && g.rng.Float64() < g.cfg.OpenRate
		return []model.Node{n}
	}
	return ForestFixture{
		Description: fmt.Sprintf("Chain of %d nodes", size),
		Nodes:       build(size),
		Properties:  Properties{Count: size, Depth: size},
	}
}

// Flat creates size root nodes without children.
func (g *Generator) Flat(size int) ForestFixture {
	nodes := make([]model.Node, size)
	for i := range nodes {
		nodes[i] = g.node()
	}
	depth := 0
	if size > 0 {
		depth = 1
	}
	return ForestFixture{
		Description: fmt.Sprintf("Flat list of %d nodes", size),
		Nodes:       nodes,
		Properties:  Properties{Count: size, Depth: depth},
	}
}

// Balanced creates a complete forest: `roots` roots, each parent with
// `fanout` children, `depth` levels.
func (g *Generator) Balanced(roots, fanout, depth int) ForestFixture {
	var build func(width, level int) []model.Node
	build = func(width, level int) []model.Node {
		if level > depth {
			return nil
		}
		nodes := make([]model.Node, width)
		for i := range nodes {
			nodes[i] = g.node()
			nodes[i].Children = build(fanout, level+1)
			nodes[i].Open = nodes[i].HasChildren() && g.rng.Float64() < g.cfg.OpenRate
		}
		return nodes
	}
	nodes := build(roots, 1)
	return ForestFixture{
		Description: fmt.Sprintf("Balanced forest: %d roots, fanout %d, depth %d", roots, fanout, depth),
		Nodes:       nodes,
		Properties:  Properties{Count: model.Count(nodes), Depth: model.Depth(nodes)},
	}
}

// Random creates a forest of up to `size` nodes with random shape and at
// most `maxDepth` levels. Exactly one node is active when size > 0.
func (g *Generator) Random(size, maxDepth int) ForestFixture {
	var nodes []model.Node
	remaining := size
	var build func(level int) []model.Node
	build = func(level int) []model.Node {
		var out []model.Node
		for remaining > 0 {
			n := g.node()
			remaining--
			if level < maxDepth && g.rng.Intn(3) == 0 {
				n.Children = build(level + 1)
				n.Open = n.HasChildren() && g.rng.Float64() < g.cfg.OpenRate
			}
			out = append(out, n)
			if level > 1 && g.rng.Intn(2) == 0 {
				break
			}
		}
		return out
	}
	nodes = build(1)

	if total := model.Count(nodes); total > 0 {
		pick := g.rng.Intn(total)
		i := 0
		model.Walk(nodes, func(n *model.Node, _ int) bool {
			n.Active = i == pick
			i++
			return true
		})
	}
	return ForestFixture{
		Description: fmt.Sprintf("Random forest of %d nodes, max depth %d", size, maxDepth),
		Nodes:       nodes,
		Properties:  Properties{Count: model.Count(nodes), Depth: model.Depth(nodes)},
	}
}

// ToJSON serializes a fixture for writing testdata files.
func (f ForestFixture) ToJSON() (string, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
