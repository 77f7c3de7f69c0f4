// Package model defines the node forest rendered by the tree widget.
package model

// Node is one entry of a forest. Children are held by value, so a forest
// built from Node literals or decoded from JSON/YAML is always finite.
type Node struct {
	Name     string `json:"name" yaml:"name"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
	// ID is surfaced on the node's selection control for host readback.
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Open   bool   `json:"open,omitempty" yaml:"open,omitempty"`
	Active bool   `json:"active,omitempty" yaml:"active,omitempty"`
}

// HasChildren reports whether the node owns a non-empty sub-forest.
func (n Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Walk visits every node of the forest depth-first, pre-order. depth is 0
// for roots. Returning false from fn skips the node's children.
func Walk(nodes []Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(n *Node, depth int) bool) {
	for i := range nodes {
		if fn(&nodes[i], depth) {
			walk(nodes[i].Children, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in the forest, counting all depths.
func Count(nodes []Node) int {
	total := 0
	Walk(nodes, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Depth returns the number of levels in the forest: 0 for an empty forest,
// 1 for a flat list.
func Depth(nodes []Node) int {
	max := 0
	Walk(nodes, func(_ *Node, d int) bool {
		if d+1 > max {
			max = d + 1
		}
		return true
	})
	return max
}

// ActiveCount returns how many nodes are marked active.
func ActiveCount(nodes []Node) int {
	n := 0
	Walk(nodes, func(node *Node, _ int) bool {
		if node.Active {
			n++
		}
		return true
	})
	return n
}

// Find returns the first node (pre-order) whose ID equals id.
func Find(nodes []Node, id string) (*Node, bool) {
	var found *Node
	Walk(nodes, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}
