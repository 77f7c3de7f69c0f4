package model

import (
	"errors"
	"testing"
)

func sampleForest() []Node {
	return []Node{
		{Name: "A", ID: "a"},
		{Name: "B", ID: "b", Open: true, Children: []Node{
			{Name: "B1", ID: "b1"},
			{Name: "B2", ID: "b2", Children: []Node{
				{Name: "B2a", ID: "b2a", Active: true},
			}},
		}},
	}
}

func TestCountAndDepth(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		count int
		depth int
	}{
		{"empty", nil, 0, 0},
		{"flat", []Node{{Name: "x"}, {Name: "y"}}, 2, 1},
		{"nested", sampleForest(), 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.nodes); got != tt.count {
				t.Errorf("Count = %d, want %d", got, tt.count)
			}
			if got := Depth(tt.nodes); got != tt.depth {
				t.Errorf("Depth = %d, want %d", got, tt.depth)
			}
		})
	}
}

func TestWalk_PreOrderAndSkip(t *testing.T) {
	var names []string
	Walk(sampleForest(), func(n *Node, _ int) bool {
		names = append(names, n.Name)
		return n.Name != "B2"
	})
	want := []string{"A", "B", "B1", "B2"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFindAndActiveCount(t *testing.T) {
	forest := sampleForest()
	n, ok := Find(forest, "b2a")
	if !ok || n.Name != "B2a" {
		t.Fatalf("Find(b2a) = %v, %v", n, ok)
	}
	if _, ok := Find(forest, "missing"); ok {
		t.Error("Find(missing) should fail")
	}
	if got := ActiveCount(forest); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sampleForest()); err != nil {
		t.Fatalf("valid forest rejected: %v", err)
	}

	bad := []Node{
		{Name: "A", ID: "x", Active: true},
		{Name: " ", ID: "x", Children: []Node{{Name: "C", Active: true}}},
	}
	err := Validate(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, target := range []error{ErrMultipleActive, ErrDuplicateID, ErrEmptyName} {
		if !errors.Is(err, target) {
			t.Errorf("expected %v in %v", target, err)
		}
	}
}

func TestValidate_EmptyIDsAreNotDuplicates(t *testing.T) {
	if err := Validate([]Node{{Name: "A"}, {Name: "B"}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
