// Package raster provides the 2D drawing surfaces behind host.Canvas: a PNG
// surface drawn with gg and an SVG surface written with svgo.
package raster

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrBadColor is returned for color strings that are not hex colors or CSS
// color names.
var ErrBadColor = errors.New("unsupported color")

// ParseColor parses "#rgb", "#rrggbb", a CSS color name or "transparent".
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrBadColor)
	case v == "transparent":
		return color.RGBA{}, nil
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(v)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

// ValidColor reports whether ParseColor accepts s.
func ValidColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

// hexString formats an opaque color as "#rrggbb".
func hexString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
