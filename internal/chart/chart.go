// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders the dashboard's charts as standalone SVG
// documents.
//
// Bar charts and heatmaps are drawn directly with svgo; their axes use
// go-moremath linear scales for tick placement and the heatmap uses a
// go-gg palette. Line charts are drawn by go-chart.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Options control the size of a rendered chart.
type Options struct {
	Width, Height int
}

// DefaultOptions is the chart size used when Options are zero.
var DefaultOptions = Options{Width: 800, Height: 480}

func (o Options) orDefault() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	return o
}

// Colors used by the dashboard's bar charts.
var (
	Blue   = color.RGBA{0x1f, 0x77, 0xb4, 0xff}
	Green  = color.RGBA{0x2c, 0xa0, 0x2c, 0xff}
	Orange = color.RGBA{0xff, 0x7f, 0x0e, 0xff}
	Red    = color.RGBA{0xd6, 0x27, 0x28, 0xff}
)

// NoDataText is shown in place of a chart with no data.
const NoDataText = "Tidak ada data"

const (
	fontSize   = 12
	lineHeight = 16
	tickLen    = 4
)

// Empty renders a placeholder chart with a title and a "no data"
// message.
func Empty(w io.Writer, title string, o Options) error {
	o = o.orDefault()
	ew := &errWriter{w: w}
	c := svg.New(ew)
	c.Start(o.Width, o.Height)
	c.Rect(0, 0, o.Width, o.Height, "fill:white")
	c.Text(o.Width/2, lineHeight+4, title, titleStyle)
	c.Text(o.Width/2, o.Height/2, NoDataText, "text-anchor:middle;font-family:sans-serif;font-size:14px;fill:#777")
	c.End()
	return ew.err
}

const (
	textStyle  = "font-family:sans-serif;font-size:12px;fill:#222"
	titleStyle = "text-anchor:middle;font-family:sans-serif;font-size:15px;font-weight:bold;fill:#222"
)

// textWidth approximates the rendered width in pixels of s at the
// chart font size.
func textWidth(s string) int {
	// basicfont is 7px wide at 13px; scale to fontSize.
	adv := font.MeasureString(basicfont.Face7x13, s)
	return (adv.Ceil()*fontSize + 12) / 13
}

// maxTextWidth returns the largest textWidth of ss.
func maxTextWidth(ss []string) int {
	max := 0
	for _, s := range ss {
		if w := textWidth(s); w > max {
			max = w
		}
	}
	return max
}

// formatValue formats a chart value for labels and ticks.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// fill returns an svgo style that fills with c.
func fill(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("fill:rgb(%d,%d,%d)", r>>8, g>>8, b>>8)
}

// errWriter records the first write error so renderers can check it
// once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
