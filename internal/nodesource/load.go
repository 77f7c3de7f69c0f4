package nodesource

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/metrics"
	"github.com/vanderheijden86/treeview/pkg/model"
)

// Load reads the forest at path. Stdin reads standard input.
func Load(path string) ([]model.Node, Source, error) {
	return LoadFrom(path, os.Stdin)
}

// LoadFrom is Load with an explicit reader standing in for standard input.
func LoadFrom(path string, stdin io.Reader) ([]model.Node, Source, error) {
	defer metrics.Timer(metrics.SourceLoad)()

	format, err := DetectFormat(path)
	if err != nil {
		return nil, Source{}, err
	}
	src := Source{Path: path, Format: format}

	var data []byte
	if path == Stdin {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, src, fmt.Errorf("read stdin: %w", err)
		}
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return nil, src, fmt.Errorf("stat %s: %w", path, err)
		}
		src.ModTime = info.ModTime()
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, src, fmt.Errorf("read %s: %w", path, err)
		}
	}
	src.Size = int64(len(data))

	nodes, err := Decode(data, format)
	if err != nil {
		return nil, src, fmt.Errorf("decode %s: %w", path, err)
	}
	src.NodeCount = model.Count(nodes)
	src.Depth = model.Depth(nodes)
	src.ActiveCount = model.ActiveCount(nodes)
	debug.Log("nodesource: loaded %s", src)
	return nodes, src, nil
}

// Decode parses a forest. Empty input is an empty forest.
func Decode(data []byte, format Format) ([]model.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var nodes []model.Node
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &nodes); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &nodes); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nodes, nil
}

// Encode serializes a forest in the given format.
func Encode(nodes []model.Node, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(nodes, "", "  ")
	case FormatYAML:
		return yaml.Marshal(nodes)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
