package stylesheet

import (
	"strings"
	"testing"

	"github.com/aymerick/douceur/parser"

	"github.com/vanderheijden86/treeview/pkg/units"
)

func generate(t *testing.T, p Params) string {
	t.Helper()
	out := Generate(p)
	if !strings.HasPrefix(out, "<style>") || !strings.HasSuffix(out, "</style>") {
		t.Fatalf("not a style element:\n%s", out)
	}
	return out
}

func declarations(t *testing.T, css, selector string) map[string]string {
	t.Helper()
	body := strings.TrimSuffix(strings.TrimPrefix(css, "<style>"), "</style>")
	sheet, err := parser.Parse(body)
	if err != nil {
		t.Fatalf("generated css does not parse: %v", err)
	}
	for _, r := range sheet.Rules {
		for _, s := range r.Selectors {
			if s == selector {
				out := make(map[string]string)
				for _, d := range r.Declarations {
					out[d.Property] = d.Value
				}
				return out
			}
		}
	}
	t.Fatalf("selector %q not found", selector)
	return nil
}

func TestGenerate_Sizing(t *testing.T) {
	css := generate(t, Params{FontSize: units.Length{Value: 12, Unit: units.UnitPt}, FolderImage: "data:image/png;base64,AAA="})

	if got := declarations(t, css, "ul")["font-size"]; got != "12pt" {
		t.Errorf("ul font-size = %q", got)
	}
	before := declarations(t, css, `input[type="checkbox"].has-children::before`)
	if before["left"] != "-12pt" || before["width"] != "12pt" || before["height"] != "12pt" {
		t.Errorf("unexpected icon box: %v", before)
	}
	if before["background-image"] != `url("data:image/png;base64,AAA=")` {
		t.Errorf("background-image = %q", before["background-image"])
	}
	if before["transition"] != "transform 0.2s 0s ease" {
		t.Errorf("transition = %q", before["transition"])
	}
}

func TestGenerate_StateRules(t *testing.T) {
	css := generate(t, Params{FontSize: units.Px(14)})

	collapse := declarations(t, css, `input[type="checkbox"].has-children:not(:checked) ~ ul`)
	if collapse["height"] != "0" || collapse["visibility"] != "hidden" {
		t.Errorf("collapse rule = %v", collapse)
	}
	rotate := declarations(t, css, `input[type="checkbox"].has-children:checked::before`)
	if rotate["transform"] != "rotate(90deg)" {
		t.Errorf("rotate rule = %v", rotate)
	}
	if got := declarations(t, css, `input[type="radio"]:checked + span`)["background-color"]; got != DefaultHighlightColor {
		t.Errorf("highlight = %q", got)
	}
	if got := declarations(t, css, "li")["list-style-type"]; got != "none" {
		t.Errorf("li bullet = %q", got)
	}
}

func TestGenerate_Fallbacks(t *testing.T) {
	css := generate(t, Params{FontSize: units.Length{Value: 2, Unit: units.UnitEm}, HighlightColor: "red;}body{x:y"})
	if got := declarations(t, css, "ul")["font-size"]; got != "16px" {
		t.Errorf("relative size should fall back to 16px, got %q", got)
	}
	if got := declarations(t, css, `input[type="radio"] + span:hover`)["background-color"]; got != DefaultHighlightColor {
		t.Errorf("invalid highlight should fall back, got %q", got)
	}
	if got := declarations(t, css, `input[type="checkbox"].has-children::before`)["background-image"]; got != "none" {
		t.Errorf("missing icon should render none, got %q", got)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := Params{FontSize: units.Px(14), FolderImage: "x", HighlightColor: "#eee"}
	if Generate(p) != Generate(p) {
		t.Error("Generate should be deterministic")
	}
}

func TestQuoteString(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"a\nb", `"a\a b"`},
		{"</style><script>", `"\3c /style>\3c script>"`},
	}
	for _, tt := range tests {
		if got := QuoteString(tt.in); got != tt.want {
			t.Errorf("QuoteString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestGenerate_ImageCannotCloseStyle(t *testing.T) {
	css := Generate(Params{FontSize: units.Px(14), FolderImage: `x")</style><b>`})
	if strings.Count(css, "</style>") != 1 {
		t.Errorf("image reference escaped the style element:\n%s", css)
	}
}
