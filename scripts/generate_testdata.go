//go:build ignore

// generate_testdata.go creates node forests for benchmarking and manual
// testing of the CLI.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	tests/testdata/forests/small.json   (100 nodes)
//	tests/testdata/forests/medium.yaml  (1000 nodes)
//	tests/testdata/forests/large.json   (5000 nodes)
//	tests/testdata/forests/deep.yaml    (chain of 200 nodes)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/treeview/internal/nodesource"
	"github.com/vanderheijden86/treeview/pkg/testutil"
)

type datasetSpec struct {
	name   string
	format nodesource.Format
	build  func(g *testutil.Generator) testutil.ForestFixture
}

var datasets = []datasetSpec{
	{"small", nodesource.FormatJSON, func(g *testutil.Generator) testutil.ForestFixture { return g.Random(100, 4) }},
	{"medium", nodesource.FormatYAML, func(g *testutil.Generator) testutil.ForestFixture { return g.Random(1000, 6) }},
	{"large", nodesource.FormatJSON, func(g *testutil.Generator) testutil.ForestFixture { return g.Random(5000, 8) }},
	{"deep", nodesource.FormatYAML, func(g *testutil.Generator) testutil.ForestFixture { return g.Chain(200) }},
}

func main() {
	outputDir := "tests/testdata/forests"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for i, ds := range datasets {
		gen := testutil.New(testutil.GeneratorConfig{
			Seed:     int64(i + 1), // Reproducible per dataset
			IDPrefix: ds.name + "-",
			OpenRate: 0.3,
		})
		fx := ds.build(gen)
		fmt.Printf("Generating %s dataset: %s...\n", ds.name, fx.Description)

		data, err := nodesource.Encode(fx.Nodes, ds.format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode %s: %v\n", ds.name, err)
			os.Exit(1)
		}
		outputPath := filepath.Join(outputDir, ds.name+"."+string(ds.format))
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}
		fmt.Printf("  Written %s (%d bytes, %d nodes, depth %d)\n", outputPath, len(data), fx.Properties.Count, fx.Properties.Depth)
	}

	fmt.Println("\nDone! Test forests created in", outputDir)
}
