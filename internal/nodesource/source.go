// Package nodesource reads node forests from JSON and YAML files or stdin and
// reports what it read.
package nodesource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Format identifies the encoding of a node source.
type Format string

const (
	// FormatJSON is a JSON array of nodes.
	FormatJSON Format = "json"
	// FormatYAML is a YAML sequence of nodes.
	FormatYAML Format = "yaml"
)

// Stdin is the path that selects standard input. Stdin is always JSON.
const Stdin = "-"

// ErrUnsupportedFormat is returned for paths whose extension names no known
// format.
var ErrUnsupportedFormat = errors.New("unsupported node source format")

// Source describes a loaded node file.
type Source struct {
	// Path is the file path, or Stdin.
	Path string `json:"path"`
	// Format is the decoded encoding.
	Format Format `json:"format"`
	// ModTime is the file's modification time; zero for stdin.
	ModTime time.Time `json:"mod_time"`
	// Size is the number of bytes read.
	Size int64 `json:"size"`
	// NodeCount is the number of nodes at all depths.
	NodeCount int `json:"node_count"`
	// Depth is the number of levels in the forest.
	Depth int `json:"depth"`
	// ActiveCount is the number of nodes marked active.
	ActiveCount int `json:"active_count"`
}

// String returns a human-readable description of the source.
func (s Source) String() string {
	mod := "stdin"
	if !s.ModTime.IsZero() {
		mod = s.ModTime.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s (%s, mod=%s, nodes=%d, depth=%d, active=%d)",
		s.Path, s.Format, mod, s.NodeCount, s.Depth, s.ActiveCount)
}

// DetectFormat picks the format from the path's extension. Stdin is JSON.
func DetectFormat(path string) (Format, error) {
	if path == Stdin {
		return FormatJSON, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}
