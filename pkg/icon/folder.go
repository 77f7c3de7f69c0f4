// Package icon draws the disclosure glyph shown next to expandable nodes.
package icon

import (
	"math"

	"github.com/vanderheijden86/treeview/pkg/debug"
	"github.com/vanderheijden86/treeview/pkg/host"
	"github.com/vanderheijden86/treeview/pkg/metrics"
)

// DefaultColor is the fill color used when the caller supplies none.
const DefaultColor = "#222222"

// inset is the gap between the triangle's vertical edge and the canvas edge.
const inset = 2.0

// Folder draws a right-pointing triangle inscribed in a size×size square and
// returns it as an embeddable image reference. The vertical edge sits at one
// third of the width and spans from 2px to size-2px; the apex sits at two
// thirds of the width on the vertical midline.
//
// The result depends only on (provider, size, color). It is "" when the
// provider is nil, refuses the canvas size, or any drawing step fails.
func Folder(provider host.CanvasProvider, size float64, color string) string {
	defer metrics.Timer(metrics.IconRaster)()

	if provider == nil {
		debug.Log("icon: no canvas provider")
		return ""
	}
	px := 1
	if f := math.Floor(size); f > 1 {
		// Out-of-range floats do not convert to int reliably.
		px = int(math.Min(f, math.MaxInt32))
	}
	c, err := provider.NewCanvas(px, px)
	if err != nil {
		debug.Log("icon: new canvas: %v", err)
		return ""
	}
	if err := c.SetFillStyle(color); err != nil {
		debug.Log("icon: fill style %q: %v", color, err)
		return ""
	}

	left1 := size / 3
	left2 := size * 2 / 3
	c.BeginPath()
	c.MoveTo(left1, size/2)
	c.LineTo(left1, inset)
	c.LineTo(left2, size/2)
	c.LineTo(left1, size-inset)
	c.ClosePath()
	c.Fill()

	url, err := c.DataURL()
	if err != nil {
		debug.Log("icon: encode: %v", err)
		return ""
	}
	return url
}
