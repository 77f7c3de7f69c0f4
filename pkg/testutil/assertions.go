package testutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vanderheijden86/treeview/pkg/model"
)

// TB is the subset of testing.TB shared with *rapid.T, so assertions work
// inside property checks.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// ParseMarkup parses widget markup into a goquery document.
func ParseMarkup(t TB, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

// Items returns every tree list item in document (pre-)order.
func Items(doc *goquery.Document) *goquery.Selection {
	return doc.Find("li")
}

// ListDepth returns the maximum number of non-empty nested lists on any
// path, i.e. the forest depth the markup represents.
func ListDepth(doc *goquery.Document) int {
	max := 0
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		d := s.ParentsFiltered("li").Length() + 1
		if d > max {
			max = d
		}
	})
	return max
}

// AssertShape verifies one <li> per node and matching nesting depth.
func AssertShape(t TB, doc *goquery.Document, nodes []model.Node) {
	t.Helper()
	if got, want := Items(doc).Length(), model.Count(nodes); got != want {
		t.Errorf("expected %d list items, got %d", want, got)
	}
	if got, want := ListDepth(doc), model.Depth(nodes); got != want {
		t.Errorf("expected nesting depth %d, got %d", want, got)
	}
}

// AssertFlagsMatch walks nodes and list items in pre-order and verifies the
// disclosure class, open and active states of every item.
func AssertFlagsMatch(t TB, doc *goquery.Document, nodes []model.Node) {
	t.Helper()
	items := Items(doc)
	i := 0
	model.Walk(nodes, func(n *model.Node, _ int) bool {
		if i >= items.Length() {
			t.Errorf("ran out of list items at node %q", n.Name)
			return false
		}
		li := items.Eq(i)
		i++

		toggle := li.ChildrenFiltered(`input[type="checkbox"]`)
		radio := li.ChildrenFiltered("label").ChildrenFiltered(`input[type="radio"]`)
		span := li.ChildrenFiltered("label").ChildrenFiltered("span")

		if got := toggle.HasClass("has-children"); got != n.HasChildren() {
			t.Errorf("node %q: has-children = %v, want %v", n.Name, got, n.HasChildren())
		}
		if _, got := toggle.Attr("checked"); got != n.Open {
			t.Errorf("node %q: disclosure checked = %v, want %v", n.Name, got, n.Open)
		}
		if _, got := radio.Attr("checked"); got != n.Active {
			t.Errorf("node %q: selection checked = %v, want %v", n.Name, got, n.Active)
		}
		if id, ok := radio.Attr("data-id"); ok != (n.ID != "") || id != n.ID {
			t.Errorf("node %q: data-id = %q (%v), want %q", n.Name, id, ok, n.ID)
		}
		if got := span.Text(); got != n.Name {
			t.Errorf("label text = %q, want %q", got, n.Name)
		}
		return true
	})
}

// RadioGroups returns the distinct name attributes of all selection radios.
func RadioGroups(doc *goquery.Document) []string {
	seen := map[string]bool{}
	var out []string
	doc.Find(`input[type="radio"]`).Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	})
	return out
}
