package nodesource

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vanderheijden86/treeview/pkg/model"
)

// ForestDiff summarizes how a forest changed between two loads. Nodes are
// matched by id; nodes without an id only count towards the totals.
type ForestDiff struct {
	// CountA and CountB are the node totals of the old and new forest.
	CountA int
	CountB int
	// Added holds ids present only in the new forest.
	Added []string
	// Removed holds ids present only in the old forest.
	Removed []string
	// Renamed holds ids whose name changed.
	Renamed []string
	// SelectionA and SelectionB are the ids of the active nodes.
	SelectionA []string
	SelectionB []string
}

// Diff compares two forests.
func Diff(a, b []model.Node) ForestDiff {
	d := ForestDiff{CountA: model.Count(a), CountB: model.Count(b)}
	namesA, activeA := index(a)
	namesB, activeB := index(b)
	d.SelectionA, d.SelectionB = activeA, activeB

	for id, name := range namesA {
		nameB, ok := namesB[id]
		switch {
		case !ok:
			d.Removed = append(d.Removed, id)
		case nameB != name:
			d.Renamed = append(d.Renamed, id)
		}
	}
	for id := range namesB {
		if _, ok := namesA[id]; !ok {
			d.Added = append(d.Added, id)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Renamed)
	return d
}

func index(nodes []model.Node) (map[string]string, []string) {
	names := make(map[string]string)
	var active []string
	model.Walk(nodes, func(n *model.Node, _ int) bool {
		if n.ID == "" {
			return true
		}
		names[n.ID] = n.Name
		if n.Active {
			active = append(active, n.ID)
		}
		return true
	})
	return names, active
}

// Changed reports whether anything besides unidentified nodes differs.
func (d ForestDiff) Changed() bool {
	return d.CountA != d.CountB || len(d.Added) > 0 || len(d.Removed) > 0 ||
		len(d.Renamed) > 0 || strings.Join(d.SelectionA, ",") != strings.Join(d.SelectionB, ",")
}

// Summary returns a human-readable summary of the differences.
func (d ForestDiff) Summary() string {
	if !d.Changed() {
		return fmt.Sprintf("unchanged (%d nodes)", d.CountA)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d -> %d nodes", d.CountA, d.CountB)
	list := func(label string, ids []string) {
		if len(ids) == 0 {
			return
		}
		fmt.Fprintf(&b, "; %d %s", len(ids), label)
		if len(ids) <= 5 {
			fmt.Fprintf(&b, " [%s]", strings.Join(ids, " "))
		}
	}
	list("added", d.Added)
	list("removed", d.Removed)
	list("renamed", d.Renamed)
	if strings.Join(d.SelectionA, ",") != strings.Join(d.SelectionB, ",") {
		fmt.Fprintf(&b, "; selection %v -> %v", d.SelectionA, d.SelectionB)
	}
	return b.String()
}
