// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/scale"
	svg "github.com/ajstarks/svgo"
)

// CoolWarm is a diverging palette from blue through light gray to
// red.
var CoolWarm = palette.RGBGradient{
	Colors: []color.RGBA{
		{0x3b, 0x4c, 0xc0, 0xff},
		{0x8d, 0xb0, 0xfe, 0xff},
		{0xdd, 0xdc, 0xdc, 0xff},
		{0xf4, 0x9a, 0x7b, 0xff},
		{0xb4, 0x04, 0x26, 0xff},
	},
}

// A HeatmapChart is a square matrix of values in [-1, 1], such as
// correlation coefficients.
type HeatmapChart struct {
	Title  string
	Labels []string
	Values [][]float64 // Values[row][col]; NaN cells are left blank
}

const colorbarWidth = 14

// Heatmap renders h as SVG to w, with each cell annotated with its
// value and a color bar on the right. If h has no labels, it renders
// an Empty chart.
func Heatmap(w io.Writer, h HeatmapChart, o Options) error {
	o = o.orDefault()

	n := len(h.Labels)
	if n == 0 {
		return Empty(w, h.Title, o)
	}
	if len(h.Values) != n {
		return fmt.Errorf("heatmap has %d labels but %d rows", n, len(h.Values))
	}
	for i, row := range h.Values {
		if len(row) != n {
			return fmt.Errorf("heatmap row %d has %d values, want %d", i, len(row), n)
		}
	}

	lw := maxTextWidth(h.Labels)
	top := 2 * lineHeight
	left := 8 + lw + 4
	// Column labels are rotated 45° below the grid.
	bottom := o.Height - (8 + int(float64(lw)*math.Sqrt2/2) + lineHeight)
	right := o.Width - (8 + colorbarWidth + 8 + textWidth("-0.5") + 8)
	cell := (right - left) / n
	if ch := (bottom - top) / n; ch < cell {
		cell = ch
	}
	if cell < 1 {
		cell = 1
	}

	ew := &errWriter{w: w}
	c := svg.New(ew)
	c.Start(o.Width, o.Height)
	c.Rect(0, 0, o.Width, o.Height, "fill:white")
	c.Text(o.Width/2, lineHeight+4, h.Title, titleStyle)

	// Annotations shrink to fit the cells.
	annot := fontSize
	if cell < 3*fontSize {
		annot = cell / 3
	}
	for i, row := range h.Values {
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			x, y := left+j*cell, top+i*cell
			col := CoolWarm.Map(unitRange(v))
			c.Gstyle(fill(col))
			c.Title(fmt.Sprintf("%s × %s: %.2f", h.Labels[i], h.Labels[j], v))
			c.Rect(x, y, cell, cell)
			c.Gend()
			if annot >= 6 {
				style := fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:%dpx;fill:%s", annot, textColor(col))
				c.Text(x+cell/2, y+cell/2+annot/3, fmt.Sprintf("%.2f", v), style)
			}
		}
	}

	// Row and column labels.
	gridBottom := top + n*cell
	for i, l := range h.Labels {
		c.Text(left-4, top+i*cell+cell/2+fontSize/3, l, "text-anchor:end;"+textStyle)
		c.TranslateRotate(left+i*cell+cell/2+fontSize/3, gridBottom+4, -45)
		c.Text(0, 0, l, "text-anchor:end;"+textStyle)
		c.Gend()
	}

	drawColorbar(c, left+n*cell+8, top, n*cell)

	c.End()
	return ew.err
}

// drawColorbar draws a vertical CoolWarm legend for [-1, 1] at x, y
// with height h.
func drawColorbar(c *svg.SVG, x, y, h int) {
	const steps = 64
	for i := 0; i < steps; i++ {
		y0 := y + h*i/steps
		y1 := y + h*(i+1)/steps
		v := 1 - 2*(float64(i)+0.5)/steps
		c.Rect(x, y0, colorbarWidth, y1-y0, fill(CoolWarm.Map(unitRange(v))))
	}
	c.Rect(x, y, colorbarWidth, h, "fill:none;stroke:#444")

	s := scale.Linear{Min: -1, Max: 1}
	ticks, _ := s.Ticks(scale.TickOptions{Max: 5})
	for _, t := range ticks {
		ty := y + h - int(math.Round(s.Map(t)*float64(h)))
		c.Line(x+colorbarWidth, ty, x+colorbarWidth+tickLen, ty, "stroke:#444")
		c.Text(x+colorbarWidth+tickLen+3, ty+fontSize/3, formatTick(t), textStyle)
	}
}

// unitRange maps v in [-1, 1] to [0, 1].
func unitRange(v float64) float64 {
	return math.Max(0, math.Min(1, (v+1)/2))
}

// textColor returns a text color that contrasts with background c.
func textColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	// Rec. 709 luma on 16-bit channels.
	luma := (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
	if luma < 0.5 {
		return "white"
	}
	return "#222"
}

func formatTick(t float64) string {
	return fmt.Sprintf("%g", math.Round(t*100)/100)
}
