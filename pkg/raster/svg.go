package raster

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/treeview/pkg/host"
)

// SVG creates canvases that record filled paths and export SVG data URLs.
type SVG struct{}

// NewCanvas implements host.CanvasProvider.
func (SVG) NewCanvas(width, height int) (host.Canvas, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &SVGCanvas{width: width, height: height, fill: color.RGBA{A: 0xff}}, nil
}

type filledPath struct {
	d    string
	fill color.RGBA
}

// SVGCanvas records canvas drawing calls as SVG path elements.
type SVGCanvas struct {
	width, height int
	fill          color.RGBA
	path          strings.Builder
	shapes        []filledPath
}

func (c *SVGCanvas) SetFillStyle(s string) error {
	col, err := ParseColor(s)
	if err != nil {
		return err
	}
	c.fill = col
	return nil
}

func (c *SVGCanvas) BeginPath() { c.path.Reset() }

func (c *SVGCanvas) MoveTo(x, y float64) { c.segment("M", x, y) }

func (c *SVGCanvas) LineTo(x, y float64) { c.segment("L", x, y) }

func (c *SVGCanvas) ClosePath() {
	if c.path.Len() > 0 {
		c.path.WriteString(" Z")
	}
}

func (c *SVGCanvas) segment(cmd string, x, y float64) {
	if c.path.Len() > 0 {
		c.path.WriteByte(' ')
	}
	c.path.WriteString(cmd)
	c.path.WriteString(formatCoord(x))
	c.path.WriteByte(' ')
	c.path.WriteString(formatCoord(y))
}

// Fill records the current path with the current fill color and clears it,
// matching gg's Fill.
func (c *SVGCanvas) Fill() {
	if c.path.Len() == 0 {
		return
	}
	c.shapes = append(c.shapes, filledPath{d: c.path.String(), fill: c.fill})
	c.path.Reset()
}

// Bytes renders the recorded shapes as an SVG document.
func (c *SVGCanvas) Bytes() []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(c.width, c.height)
	for _, s := range c.shapes {
		style := "fill:" + hexString(s.fill)
		if s.fill.A == 0 {
			style += ";fill-opacity:0"
		}
		canvas.Path(s.d, style)
	}
	canvas.End()
	return buf.Bytes()
}

// DataURL encodes the SVG document as a base64 data URL.
func (c *SVGCanvas) DataURL() (string, error) {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(c.Bytes()), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
