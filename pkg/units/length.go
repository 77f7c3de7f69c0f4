// Package units parses and resolves CSS <length> values used for font sizes.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// DefaultFontSize is the pixel size of the "medium" keyword and of a
// document root that sets no font size.
const DefaultFontSize = 16.0

// Unit is a CSS length unit.
type Unit string

const (
	UnitNone    Unit = ""        // bare number
	UnitKeyword Unit = "keyword" // absolute-size or relative-size keyword
	UnitPct     Unit = "%"       // percentage of the parent font size
	UnitEm      Unit = "em"      // parent font size
	UnitRem     Unit = "rem"     // root font size
	UnitEx      Unit = "ex"      // x-height, approximated as 0.5em
	UnitCh      Unit = "ch"      // width of "0", approximated as 0.5em
	UnitVw      Unit = "vw"      // 1% of the viewport width
	UnitVh      Unit = "vh"      // 1% of the viewport height
	UnitVmin    Unit = "vmin"    // 1% of the smaller viewport dimension
	UnitVmax    Unit = "vmax"    // 1% of the larger viewport dimension
	UnitPx      Unit = "px"      // 1px = 1/96th of 1in
	UnitPt      Unit = "pt"      // 1pt = 1/72th of 1in
	UnitPc      Unit = "pc"      // 1pc = 1/6th of 1in
	UnitIn      Unit = "in"      // 1in = 2.54cm = 96px
	UnitCm      Unit = "cm"      // 1cm = 96px/2.54
	UnitMm      Unit = "mm"      // 1mm = 1/10th of cm
	UnitQ       Unit = "q"       // 1q = 1/40th of cm
)

// ratio converts an absolute unit to pixels as px = v * num / den, which
// keeps whole-pixel results exact (12pt is exactly 16px).
type ratio struct{ num, den float64 }

var pxPer = map[Unit]ratio{
	UnitPx: {1, 1},
	UnitPt: {96, 72},
	UnitPc: {96, 6},
	UnitIn: {96, 1},
	UnitCm: {96, 2.54},
	UnitMm: {96, 25.4},
	UnitQ:  {96, 101.6},
}

var relative = map[Unit]bool{
	UnitPct: true, UnitEm: true, UnitRem: true, UnitEx: true, UnitCh: true,
	UnitVw: true, UnitVh: true, UnitVmin: true, UnitVmax: true,
}

// keywordScale maps font-size keywords to a factor of DefaultFontSize.
// "smaller" and "larger" are relative to the parent and handled separately.
var keywordScale = map[string]float64{
	"xx-small":  3.0 / 5.0,
	"x-small":   3.0 / 4.0,
	"small":     8.0 / 9.0,
	"medium":    1,
	"large":     6.0 / 5.0,
	"x-large":   3.0 / 2.0,
	"xx-large":  2,
	"xxx-large": 3,
}

const relativeKeywordRatio = 1.2

// Parse errors.
var (
	ErrEmpty   = errors.New("empty length")
	ErrInvalid = errors.New("invalid length")
)

// Length is a parsed CSS length.
type Length struct {
	Value   float64
	Unit    Unit
	Keyword string // set when Unit is UnitKeyword
}

// Px returns an absolute pixel length.
func Px(v float64) Length {
	return Length{Value: v, Unit: UnitPx}
}

// Parse reads a single CSS length, percentage, number or font-size keyword.
// Surrounding whitespace is ignored; anything else is ErrInvalid.
func Parse(s string) (Length, error) {
	if strings.TrimSpace(s) == "" {
		return Length{}, ErrEmpty
	}

	l := css.NewLexer(parse.NewInputString(s))
	var (
		tt     css.TokenType
		data   []byte
		result Length
		seen   bool
	)
	for {
		tt, data = l.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.WhitespaceToken {
			continue
		}
		if seen {
			return Length{}, fmt.Errorf("%w: %q has trailing tokens", ErrInvalid, s)
		}
		seen = true

		var err error
		switch tt {
		case css.NumberToken:
			result, err = parseNumber(string(data), UnitNone)
		case css.PercentageToken:
			result, err = parseNumber(strings.TrimSuffix(string(data), "%"), UnitPct)
		case css.DimensionToken:
			result, err = parseDimension(string(data))
		case css.IdentToken:
			result, err = parseKeyword(string(data))
		default:
			err = fmt.Errorf("%w: unexpected token %s in %q", ErrInvalid, tt, s)
		}
		if err != nil {
			return Length{}, err
		}
	}
	if !seen {
		return Length{}, ErrEmpty
	}
	return result, nil
}

func parseNumber(num string, unit Unit) (Length, error) {
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q: %v", ErrInvalid, num, err)
	}
	return Length{Value: v, Unit: unit}, nil
}

func parseDimension(dim string) (Length, error) {
	split := numberPrefix(dim)
	if split == 0 || split == len(dim) {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalid, dim)
	}
	unit := Unit(strings.ToLower(dim[split:]))
	if _, abs := pxPer[unit]; !abs && !relative[unit] {
		return Length{}, fmt.Errorf("%w: unknown unit %q", ErrInvalid, unit)
	}
	return parseNumber(dim[:split], unit)
}

// numberPrefix returns the length of the numeric part of a dimension token.
// Exponents are accepted only when followed by a digit, so "1em" splits as
// "1" + "em".
func numberPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	if i+1 < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseKeyword(ident string) (Length, error) {
	kw := strings.ToLower(ident)
	if _, ok := keywordScale[kw]; ok || kw == "smaller" || kw == "larger" {
		return Length{Unit: UnitKeyword, Keyword: kw}, nil
	}
	return Length{}, fmt.Errorf("%w: unknown keyword %q", ErrInvalid, ident)
}

// IsAbsolute reports whether the length carries an absolute unit and can be
// used without resolving it against a context.
func (l Length) IsAbsolute() bool {
	_, ok := pxPer[l.Unit]
	return ok
}

// Pixels converts an absolute length to pixels.
func (l Length) Pixels() (float64, bool) {
	r, ok := pxPer[l.Unit]
	if !ok {
		return 0, false
	}
	return l.Value * r.num / r.den, true
}

// Resolve converts the length to pixels for a font-size declaration, given
// the parent's and the root's computed font sizes. It returns false when the
// declaration is invalid for font-size (negative sizes, non-zero bare
// numbers) or needs a viewport the resolver does not have.
func (l Length) Resolve(parentPx, rootPx float64) (float64, bool) {
	if l.Value < 0 {
		return 0, false
	}
	if px, ok := l.Pixels(); ok {
		return px, true
	}
	switch l.Unit {
	case UnitNone:
		// Only a bare zero is a valid length.
		if l.Value == 0 {
			return 0, true
		}
		return 0, false
	case UnitPct:
		return parentPx * l.Value / 100, true
	case UnitEm:
		return parentPx * l.Value, true
	case UnitRem:
		return rootPx * l.Value, true
	case UnitEx, UnitCh:
		return parentPx * l.Value / 2, true
	case UnitKeyword:
		switch l.Keyword {
		case "smaller":
			return parentPx / relativeKeywordRatio, true
		case "larger":
			return parentPx * relativeKeywordRatio, true
		}
		return DefaultFontSize * keywordScale[l.Keyword], true
	}
	return 0, false
}

// String serializes the length canonically, e.g. "14px", "1.5em", "small".
func (l Length) String() string {
	if l.Unit == UnitKeyword {
		return l.Keyword
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(l.Unit)
}

// Negate returns the length with its value sign flipped.
func (l Length) Negate() Length {
	l.Value = -l.Value
	return l
}
