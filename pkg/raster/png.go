package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"git.sr.ht/~sbinet/gg"

	"github.com/vanderheijden86/treeview/pkg/host"
)

// MaxCanvasSize bounds each canvas dimension. Larger requests fail with
// host.ErrNoCanvas instead of allocating the surface.
const MaxCanvasSize = 4096

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxCanvasSize || height > MaxCanvasSize {
		return fmt.Errorf("canvas size %dx%d: %w", width, height, host.ErrNoCanvas)
	}
	return nil
}

// PNG creates gg-backed canvases that export PNG data URLs.
type PNG struct{}

// NewCanvas implements host.CanvasProvider.
func (PNG) NewCanvas(width, height int) (host.Canvas, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &PNGCanvas{dc: gg.NewContext(width, height)}, nil
}

// PNGCanvas is a raster surface drawn with gg.
type PNGCanvas struct {
	dc *gg.Context
}

func (c *PNGCanvas) SetFillStyle(s string) error {
	col, err := ParseColor(s)
	if err != nil {
		return err
	}
	c.dc.SetColor(col)
	return nil
}

func (c *PNGCanvas) BeginPath()          { c.dc.ClearPath() }
func (c *PNGCanvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *PNGCanvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *PNGCanvas) ClosePath()          { c.dc.ClosePath() }
func (c *PNGCanvas) Fill()               { c.dc.Fill() }

// DataURL encodes the surface as a base64 PNG data URL.
func (c *PNGCanvas) DataURL() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.dc.Image()); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
