// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"
	"math"

	"github.com/aclements/go-moremath/scale"
	svg "github.com/ajstarks/svgo"
)

// A frame is the plot area of a chart with a linear Y axis and a
// discrete X axis of evenly spaced positions.
type frame struct {
	c *svg.SVG

	// Plot area, in pixels.
	left, top, right, bottom int

	y      scale.Linear
	yticks []float64

	// xlabels label the X positions. rotate is set if they
	// would overlap horizontally.
	xlabels []string
	rotate  bool
}

const maxYTicks = 8

// newFrame lays out a chart of size o with the given titles, X
// position labels, and Y data extent [0, ymax].
func newFrame(c *svg.SVG, o Options, title, xlabel, ylabel string, xlabels []string, ymax float64) *frame {
	f := &frame{c: c, xlabels: xlabels}

	if !(ymax > 0) {
		ymax = 1
	}
	f.y = scale.Linear{Min: 0, Max: ymax}
	f.y.Nice(scale.TickOptions{Max: maxYTicks})
	f.yticks, _ = f.y.Ticks(scale.TickOptions{Max: maxYTicks})

	ylabels := make([]string, len(f.yticks))
	for i, t := range f.yticks {
		ylabels[i] = formatValue(t)
	}

	f.top = 2 * lineHeight
	f.left = 8 + lineHeight + maxTextWidth(ylabels) + tickLen + 4
	f.right = o.Width - 16

	// Rotate X labels if they don't fit side by side.
	xw := maxTextWidth(xlabels)
	bottom := tickLen + lineHeight + 4
	if len(xlabels) > 0 && xw+6 > (f.right-f.left)/len(xlabels) {
		f.rotate = true
		bottom = tickLen + 4 + int(float64(xw)*math.Sqrt2/2) + lineHeight/2
	}
	if xlabel != "" {
		bottom += lineHeight + 4
	}
	f.bottom = o.Height - bottom
	if f.bottom < f.top+lineHeight {
		f.bottom = f.top + lineHeight
	}

	c.Rect(0, 0, o.Width, o.Height, "fill:white")
	c.Text(o.Width/2, lineHeight+4, title, titleStyle)
	if xlabel != "" {
		c.Text((f.left+f.right)/2, o.Height-8, xlabel, "text-anchor:middle;"+textStyle)
	}
	if ylabel != "" {
		c.TranslateRotate(lineHeight, (f.top+f.bottom)/2, -90)
		c.Text(0, 0, ylabel, "text-anchor:middle;"+textStyle)
		c.Gend()
	}
	return f
}

// yPos returns the pixel row of Y value v.
func (f *frame) yPos(v float64) int {
	return f.bottom - int(math.Round(f.y.Map(v)*float64(f.bottom-f.top)))
}

// band returns the pixel extent of X position i.
func (f *frame) band(i int) (x0, x1 int) {
	n := len(f.xlabels)
	w := float64(f.right-f.left) / float64(n)
	return f.left + int(math.Round(float64(i)*w)), f.left + int(math.Round(float64(i+1)*w))
}

// xPos returns the pixel column of the center of X position i.
func (f *frame) xPos(i int) int {
	x0, x1 := f.band(i)
	return (x0 + x1) / 2
}

// drawGrid draws horizontal grid lines at the Y ticks, behind the
// data.
func (f *frame) drawGrid() {
	f.c.Gstyle("stroke:#e5e5e5;stroke-width:1")
	for _, t := range f.yticks {
		y := f.yPos(t)
		f.c.Line(f.left, y, f.right, y)
	}
	f.c.Gend()
}

// drawAxes draws both axes with their ticks and tick labels.
func (f *frame) drawAxes() {
	c := f.c
	c.Gstyle("stroke:#444;stroke-width:1")
	c.Line(f.left, f.bottom, f.right, f.bottom)
	c.Line(f.left, f.top, f.left, f.bottom)
	for _, t := range f.yticks {
		y := f.yPos(t)
		c.Line(f.left-tickLen, y, f.left, y)
	}
	for i := range f.xlabels {
		x := f.xPos(i)
		c.Line(x, f.bottom, x, f.bottom+tickLen)
	}
	c.Gend()

	for _, t := range f.yticks {
		c.Text(f.left-tickLen-3, f.yPos(t)+fontSize/3, formatValue(t), "text-anchor:end;"+textStyle)
	}
	for i, l := range f.xlabels {
		x, y := f.xPos(i), f.bottom+tickLen+fontSize
		if f.rotate {
			c.TranslateRotate(x+fontSize/3, f.bottom+tickLen+4, -45)
			c.Text(0, 0, l, "text-anchor:end;"+textStyle)
			c.Gend()
			continue
		}
		c.Text(x, y, l, "text-anchor:middle;"+textStyle)
	}
}

// A legendEntry is one row of a legend.
type legendEntry struct {
	name  string
	color color.Color
}

// drawLegend draws a boxed legend in the top right corner of the plot
// area.
func (f *frame) drawLegend(title string, entries []legendEntry) {
	if len(entries) == 0 {
		return
	}
	names := []string{title}
	for _, e := range entries {
		names = append(names, e.name)
	}
	w := maxTextWidth(names) + 30
	rows := len(entries)
	if title != "" {
		rows++
	}
	h := rows*lineHeight + 8
	x, y := f.right-w-6, f.top+6

	c := f.c
	c.Rect(x, y, w, h, "fill:white;fill-opacity:0.85;stroke:#bbb")
	ty := y + lineHeight
	if title != "" {
		c.Text(x+8, ty, title, "font-weight:bold;"+textStyle)
		ty += lineHeight
	}
	for _, e := range entries {
		c.Rect(x+8, ty-10, 12, 12, fill(e.color))
		c.Text(x+26, ty, e.name, textStyle)
		ty += lineHeight
	}
}
