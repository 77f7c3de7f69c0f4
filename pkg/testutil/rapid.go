package testutil

import (
	"pgregory.net/rapid"

	"github.com/vanderheijden86/treeview/pkg/model"
)

// NameGen draws node names that exercise HTML escaping.
func NameGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9 <>&"']{1,12}`)
}

// ForestGen draws finite forests of at most maxDepth levels. Open and Active
// flags are drawn independently, so several nodes may be active; use
// SingleActive to normalize.
func ForestGen(maxDepth int) *rapid.Generator[[]model.Node] {
	return rapid.Custom(func(t *rapid.T) []model.Node {
		return drawForest(t, maxDepth, "root")
	})
}

func drawForest(t *rapid.T, depth int, label string) []model.Node {
	if depth <= 0 {
		return nil
	}
	n := rapid.IntRange(0, 4).Draw(t, label+"/len")
	nodes := make([]model.Node, n)
	for i := range nodes {
		nodes[i] = model.Node{
			Name:   NameGen().Draw(t, label+"/name"),
			ID:     rapid.StringMatching(`[a-z0-9-]{0,6}`).Draw(t, label+"/id"),
			Open:   rapid.Bool().Draw(t, label+"/open"),
			Active: rapid.Bool().Draw(t, label+"/active"),
		}
		if rapid.Bool().Draw(t, label+"/nest") {
			nodes[i].Children = drawForest(t, depth-1, label+"/child")
		}
	}
	return nodes
}

// SingleActive clears every Active flag and, when keep is in range, marks the
// keep-th node (pre-order) active. It returns the number of active nodes.
func SingleActive(nodes []model.Node, keep int) int {
	i, active := 0, 0
	model.Walk(nodes, func(n *model.Node, _ int) bool {
		n.Active = i == keep
		if n.Active {
			active++
		}
		i++
		return true
	})
	return active
}
