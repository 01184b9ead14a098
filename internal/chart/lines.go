// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// A LineChart plots one or more series of points joined by lines. X
// values are integers in [XMin, XMax], each of which gets a tick.
type LineChart struct {
	Title          string
	XLabel, YLabel string
	XMin, XMax     int

	// XFormat, if non-nil, formats X tick labels.
	XFormat func(x int) string

	Series []LineSeries
}

// A LineSeries is one line of a LineChart. X and Y must have the same
// length and X must be increasing.
type LineSeries struct {
	Name  string
	Color color.Color
	X     []int
	Y     []float64
}

// Lines renders l as SVG to w using go-chart. If l has no points, it
// renders an Empty chart.
func Lines(w io.Writer, l LineChart, o Options) error {
	o = o.orDefault()
	if l.XMax <= l.XMin {
		return fmt.Errorf("empty X range [%d, %d]", l.XMin, l.XMax)
	}

	var series []gochart.Series
	ymax := 0.0
	for _, s := range l.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q has %d X values but %d Y values", s.Name, len(s.X), len(s.Y))
		}
		if len(s.X) == 0 {
			// go-chart rejects empty series.
			continue
		}
		xs := make([]float64, len(s.X))
		for i, x := range s.X {
			if x < l.XMin || x > l.XMax {
				return fmt.Errorf("series %q: X value %d outside [%d, %d]", s.Name, x, l.XMin, l.XMax)
			}
			xs[i] = float64(x)
			if s.Y[i] > ymax {
				ymax = s.Y[i]
			}
		}
		col := drawingColor(s.Color)
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Y,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    3,
			},
		})
	}
	if len(series) == 0 {
		return Empty(w, l.Title, o)
	}

	format := l.XFormat
	if format == nil {
		format = strconv.Itoa
	}
	var xticks []gochart.Tick
	var xlabels []string
	for x := l.XMin; x <= l.XMax; x++ {
		label := format(x)
		xticks = append(xticks, gochart.Tick{Value: float64(x), Label: label})
		xlabels = append(xlabels, label)
	}
	tickStyle := gochart.Style{}
	bottom := 28
	if plotWidth := o.Width - 100; maxTextWidth(xlabels)+6 > plotWidth/len(xlabels) {
		tickStyle.TextRotationDegrees = 45
		bottom += maxTextWidth(xlabels) / 2
	}

	// Same Y ticks as the bar charts.
	if !(ymax > 0) {
		ymax = 1
	}
	ys := scale.Linear{Min: 0, Max: ymax}
	ys.Nice(scale.TickOptions{Max: maxYTicks})
	ymajor, _ := ys.Ticks(scale.TickOptions{Max: maxYTicks})
	var yticks []gochart.Tick
	for _, t := range ymajor {
		yticks = append(yticks, gochart.Tick{Value: t, Label: formatValue(t)})
	}

	grid := gochart.Style{StrokeColor: drawing.ColorFromHex("e5e5e5"), StrokeWidth: 1}
	hidden := gochart.Style{Hidden: true}
	ch := gochart.Chart{
		Title:      l.Title,
		Width:      o.Width,
		Height:     o.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: bottom}},
		XAxis: gochart.XAxis{
			Name:           l.XLabel,
			Range:          &gochart.ContinuousRange{Min: float64(l.XMin), Max: float64(l.XMax)},
			Ticks:          xticks,
			TickStyle:      tickStyle,
			GridMajorStyle: hidden,
			GridMinorStyle: hidden,
		},
		YAxis: gochart.YAxis{
			Name:           l.YLabel,
			Range:          &gochart.ContinuousRange{Min: ys.Min, Max: ys.Max},
			Ticks:          yticks,
			GridMajorStyle: grid,
			GridMinorStyle: hidden,
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.SVG, w)
}

// drawingColor converts c to a go-chart color.
func drawingColor(c color.Color) drawing.Color {
	if c == nil {
		return drawing.ColorBlack
	}
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
