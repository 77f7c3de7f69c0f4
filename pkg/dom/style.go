package dom

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/vanderheijden86/treeview/pkg/units"
)

// dynamicPseudo matches selectors that depend on pointer or focus state or
// target pseudo-elements; such selectors never match in this document.
var dynamicPseudo = regexp.MustCompile(`::|:(hover|focus|focus-within|focus-visible|active|visited)\b`)

// inherited lists the properties that inherit from the parent when no rule
// sets them.
var inherited = map[string]bool{
	"visibility":  true,
	"cursor":      true,
	"font-size":   true,
	"color":       true,
	"font-family": true,
}

// initial holds initial values for properties the widget cares about.
var initial = map[string]string{
	"visibility":       "visible",
	"height":           "auto",
	"overflow":         "visible",
	"display":          "inline",
	"transform":        "none",
	"background-color": "transparent",
	"cursor":           "auto",
	"opacity":          "1",
}

type styleRule struct {
	selector string
	match    cascadia.Selector
	decls    []*css.Declaration
}

// sheet is an ordered list of compiled style rules.
type sheet struct {
	rules []styleRule
}

func (s *sheet) add(text string) error {
	parsed, err := parser.Parse(text)
	if err != nil {
		return fmt.Errorf("parse style sheet: %w", err)
	}
	s.addRules(parsed.Rules)
	return nil
}

func (s *sheet) addRules(rules []*css.Rule) {
	for _, r := range rules {
		if r.Kind != css.QualifiedRule {
			continue
		}
		for _, sel := range r.Selectors {
			sel = strings.TrimSpace(sel)
			if sel == "" || dynamicPseudo.MatchString(sel) {
				continue
			}
			m, err := cascadia.Compile(sel)
			if err != nil {
				continue
			}
			s.rules = append(s.rules, styleRule{selector: sel, match: m, decls: r.Declarations})
		}
	}
}

// declared returns the value of the last matching declaration of prop.
func (s *sheet) declared(n *html.Node, prop string) (string, bool) {
	if s == nil {
		return "", false
	}
	var (
		val   string
		found bool
	)
	for _, r := range s.rules {
		if !r.match.Match(n) {
			continue
		}
		for _, d := range r.decls {
			if d.Property == prop && validDeclaration(prop, d.Value) {
				val, found = d.Value, true
			}
		}
	}
	return val, found
}

// validDeclaration reports whether value parses for prop. Invalid
// declarations are dropped and never take part in the cascade.
func validDeclaration(prop, value string) bool {
	switch prop {
	case "font-size":
		if value == "inherit" {
			return true
		}
		l, err := units.Parse(value)
		if err != nil || l.Value < 0 {
			return false
		}
		// Only a bare zero is a valid unitless length.
		return l.Unit != units.UnitNone || l.Value == 0
	}
	return true
}

// parseInline parses a style attribute into ordered declarations.
func parseInline(style string) []*css.Declaration {
	if strings.TrimSpace(style) == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil
	}
	return decls
}

func formatInline(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.Property+": "+d.Value+";")
	}
	return strings.Join(parts, " ")
}

// styleText collects the text of every <style> element under n.
func styleText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "style" {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
					b.WriteByte('\n')
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
