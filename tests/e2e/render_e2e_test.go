package main_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/vanderheijden86/treeview/internal/nodesource"
	"github.com/vanderheijden86/treeview/pkg/testutil"
)

func writeFixture(t *testing.T, dir, name string, fixture testutil.ForestFixture, format nodesource.Format) string {
	t.Helper()
	data, err := nodesource.Encode(fixture.Nodes, format)
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestE2E_RenderGeneratedForests(t *testing.T) {
	bin := treeviewBinary(t)
	dir := t.TempDir()
	gen := testutil.NewDefault()

	fixtures := map[string]testutil.ForestFixture{
		"chain.json":    gen.Chain(25),
		"flat.yaml":     gen.Flat(200),
		"balanced.json": gen.Balanced(3, 3, 4),
		"random.yaml":   gen.Random(300, 6),
	}
	var paths []string
	for name, fx := range fixtures {
		format := nodesource.FormatJSON
		if strings.HasSuffix(name, ".yaml") {
			format = nodesource.FormatYAML
		}
		paths = append(paths, writeFixture(t, dir, name, fx, format))
	}

	outDir := filepath.Join(dir, "site") + string(filepath.Separator)
	cmd := exec.Command(bin, append([]string{"-out", outDir, "-strict"}, paths...)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("render failed: %v\n%s", err, out)
	}

	for name, fx := range fixtures {
		page := strings.TrimSuffix(name, filepath.Ext(name)) + ".html"
		data, err := os.ReadFile(filepath.Join(outDir, page))
		if err != nil {
			t.Fatalf("read %s: %v", page, err)
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		tmpl := doc.Find("template")
		if got := tmpl.Find("li").Length(); got != fx.Properties.Count {
			t.Errorf("%s: %d items, want %d", page, got, fx.Properties.Count)
		}
		if got := tmpl.Find(`input[type="radio"][checked]`).Length(); got > 1 {
			t.Errorf("%s: %d active nodes", page, got)
		}
	}
}

func TestE2E_PrintFromStdin(t *testing.T) {
	bin := treeviewBinary(t)
	cmd := exec.Command(bin, "-print", "-width", "20")
	cmd.Stdin = strings.NewReader(`[{"name": "Root", "open": true, "children": [{"name": "A child with a long name"}]}]`)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("print failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "▾ ( ) Root" {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("long line should be truncated: %q", lines[1])
	}
}

func TestE2E_StrictRejectsDuplicateIDs(t *testing.T) {
	bin := treeviewBinary(t)
	cmd := exec.Command(bin, "-strict")
	cmd.Stdin = strings.NewReader(`[{"name": "A", "id": "x"}, {"name": "B", "id": "x"}]`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(stderr.String(), "duplicate node id") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestE2E_Version(t *testing.T) {
	out, err := exec.Command(treeviewBinary(t), "-version").Output()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), "treeview ") {
		t.Errorf("version output = %q", out)
	}
}
