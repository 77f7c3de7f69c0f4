package units

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"14px", Length{Value: 14, Unit: UnitPx}},
		{" 12PT ", Length{Value: 12, Unit: UnitPt}},
		{"1.5em", Length{Value: 1.5, Unit: UnitEm}},
		{"1e1px", Length{Value: 10, Unit: UnitPx}},
		{"150%", Length{Value: 150, Unit: UnitPct}},
		{"20", Length{Value: 20, Unit: UnitNone}},
		{"Large", Length{Unit: UnitKeyword, Keyword: "large"}},
		{"smaller", Length{Unit: UnitKeyword, Keyword: "smaller"}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse("   "); !errors.Is(err, ErrEmpty) {
		t.Errorf("blank: expected ErrEmpty, got %v", err)
	}
	for _, in := range []string{"12 px", "12furlongs", "huge", "#fff", "12px;"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q): expected ErrInvalid, got %v", in, err)
		}
	}
}

func TestPixels(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"14px", 14},
		{"12pt", 16},
		{"1in", 96},
		{"1pc", 16},
	}
	for _, tt := range tests {
		l, err := Parse(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if !l.IsAbsolute() {
			t.Errorf("%s should be absolute", tt.in)
		}
		if got, ok := l.Pixels(); !ok || got != tt.want {
			t.Errorf("%s.Pixels() = %v, %v; want %v", tt.in, got, ok, tt.want)
		}
	}

	em := Length{Value: 2, Unit: UnitEm}
	if em.IsAbsolute() {
		t.Error("em should be relative")
	}
	if _, ok := em.Pixels(); ok {
		t.Error("relative length converted without context")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		l      Length
		want   float64
		wantOK bool
	}{
		{Length{Value: 2, Unit: UnitEm}, 40, true},
		{Length{Value: 50, Unit: UnitPct}, 10, true},
		{Length{Value: 2, Unit: UnitRem}, 32, true},
		{Length{Value: 1, Unit: UnitEx}, 10, true},
		{Length{Unit: UnitKeyword, Keyword: "xx-large"}, 32, true},
		{Length{Unit: UnitKeyword, Keyword: "larger"}, 24, true},
		{Length{Value: 0, Unit: UnitNone}, 0, true},
		{Length{Value: 20, Unit: UnitNone}, 0, false},
		{Length{Value: -1, Unit: UnitPx}, 0, false},
		{Length{Value: 10, Unit: UnitVw}, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.l.Resolve(20, 16)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("%s.Resolve(20, 16) = %v, %v; want %v, %v", tt.l, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestString(t *testing.T) {
	for _, in := range []string{"14px", "1.5em", "150%", "small", "0"} {
		l, err := Parse(in)
		if err != nil {
			t.Fatal(err)
		}
		if got := l.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
	if got := Px(3).Negate().String(); got != "-3px" {
		t.Errorf("Negate = %q", got)
	}
}
