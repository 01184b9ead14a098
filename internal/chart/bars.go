// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// A BarChart is a vertical bar chart with one group of bars per
// category and one bar per series within each group.
type BarChart struct {
	Title          string
	XLabel, YLabel string
	Categories     []string
	Series         []BarSeries

	// Legend is the title of the legend. The legend is shown if
	// there is more than one series.
	Legend string
}

// A BarSeries is one bar in every category of a BarChart.
type BarSeries struct {
	Name string

	// Color fills every bar in the series. Colors, if non-nil,
	// overrides Color per category.
	Color  color.Color
	Colors []color.Color

	// Values gives the bar height in each category. A NaN value
	// draws no bar.
	Values []float64

	// Labels, if non-nil, reports which bars are labeled with
	// their value.
	Labels []bool
}

// Bars renders b as SVG to w. If b has no non-NaN values, it renders
// an Empty chart.
func Bars(w io.Writer, b BarChart, o Options) error {
	o = o.orDefault()

	ymax, ok := 0.0, false
	for _, s := range b.Series {
		if len(s.Values) != len(b.Categories) {
			return fmt.Errorf("series %q has %d values for %d categories", s.Name, len(s.Values), len(b.Categories))
		}
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			ok = true
			ymax = math.Max(ymax, v)
		}
	}
	if !ok {
		return Empty(w, b.Title, o)
	}

	ew := &errWriter{w: w}
	c := svg.New(ew)
	c.Start(o.Width, o.Height)
	f := newFrame(c, o, b.Title, b.XLabel, b.YLabel, b.Categories, ymax)
	f.drawGrid()

	ns := len(b.Series)
	for i := range b.Categories {
		x0, x1 := f.band(i)
		// Leave 10% padding on each side of the group.
		pad := (x1 - x0) / 10
		gw := float64(x1-x0-2*pad) / float64(ns)
		for j, s := range b.Series {
			v := s.Values[i]
			if math.IsNaN(v) {
				continue
			}
			bx0 := x0 + pad + int(math.Round(float64(j)*gw))
			bx1 := x0 + pad + int(math.Round(float64(j+1)*gw))
			y := f.yPos(v)
			col := s.Color
			if s.Colors != nil {
				col = s.Colors[i]
			}
			c.Gstyle(fill(col))
			c.Title(fmt.Sprintf("%s: %s", barName(s.Name, b.Categories[i]), formatValue(v)))
			c.Rect(bx0, y, bx1-bx0, f.bottom-y)
			c.Gend()
			if s.Labels != nil && s.Labels[i] {
				c.Text((bx0+bx1)/2, y-4, formatValue(v), "text-anchor:middle;"+textStyle)
			}
		}
	}

	f.drawAxes()
	if ns > 1 {
		entries := make([]legendEntry, ns)
		for j, s := range b.Series {
			entries[j] = legendEntry{s.Name, s.Color}
		}
		f.drawLegend(b.Legend, entries)
	}
	c.End()
	return ew.err
}

func barName(series, category string) string {
	if series == "" {
		return category
	}
	return category + ", " + series
}
