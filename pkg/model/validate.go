package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validation errors. Rendering never checks these; Validate is an opt-in
// check for callers that want consistent input.
var (
	ErrMultipleActive = errors.New("more than one node is marked active")
	ErrDuplicateID    = errors.New("duplicate node id")
	ErrEmptyName      = errors.New("node has an empty name")
)

// Validate reports every inconsistency found in the forest, joined into a
// single error. It returns nil for a consistent forest.
func Validate(nodes []Node) error {
	var errs []error
	seen := make(map[string]string)
	var firstActive string

	var visit func(nodes []Node, prefix []int)
	visit = func(nodes []Node, prefix []int) {
		for i := range nodes {
			n := &nodes[i]
			path := append(prefix[:len(prefix):len(prefix)], i)
			where := formatPath(path)

			if strings.TrimSpace(n.Name) == "" {
				errs = append(errs, fmt.Errorf("%w at %s", ErrEmptyName, where))
			}
			if n.ID != "" {
				if prev, dup := seen[n.ID]; dup {
					errs = append(errs, fmt.Errorf("%w %q at %s (first seen at %s)", ErrDuplicateID, n.ID, where, prev))
				} else {
					seen[n.ID] = where
				}
			}
			if n.Active {
				if firstActive == "" {
					firstActive = where
				} else {
					errs = append(errs, fmt.Errorf("%w: %s and %s", ErrMultipleActive, firstActive, where))
				}
			}
			visit(n.Children, path)
		}
	}
	visit(nodes, nil)

	return errors.Join(errs...)
}

// formatPath renders an index path as "[0 2 1]".
func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
