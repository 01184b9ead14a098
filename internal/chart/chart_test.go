// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/color"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wellFormed checks that svg parses as XML and has an <svg> root.
func wellFormed(t *testing.T, svg string) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(svg))
	root := ""
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err, "SVG is not well-formed:\n%s", svg)
		if se, ok := tok.(xml.StartElement); ok && root == "" {
			root = se.Name.Local
		}
	}
	assert.Equal(t, "svg", root)
}

func TestEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Empty(&buf, "Judul & Grafik", Options{}))
	wellFormed(t, buf.String())
	assert.Contains(t, buf.String(), NoDataText)
	assert.Contains(t, buf.String(), "Judul &amp; Grafik")
	assert.Contains(t, buf.String(), `width="800"`)
}

func TestOptionsDefault(t *testing.T) {
	assert.Equal(t, DefaultOptions, Options{}.orDefault())
	assert.Equal(t, Options{Width: 300, Height: DefaultOptions.Height}, Options{Width: 300}.orDefault())
}

func TestFormatValue(t *testing.T) {
	for _, test := range []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{1044, "1044"},
		{158.4, "158.40"},
		{-0.5, "-0.50"},
		{math.NaN(), ""},
	} {
		assert.Equal(t, test.want, formatValue(test.v), "formatValue(%v)", test.v)
	}
}

func TestErrWriter(t *testing.T) {
	err := Empty(failWriter{}, "x", Options{})
	assert.ErrorIs(t, err, errFail)
}

var errFail = errors.New("write failed")

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errFail }

func TestBars(t *testing.T) {
	var buf bytes.Buffer
	err := Bars(&buf, BarChart{
		Title:      "Total",
		Categories: []string{"Musim Semi", "Musim Panas"},
		Series: []BarSeries{{
			Colors: []color.Color{Blue, Green},
			Values: []float64{1044, 524},
			Labels: []bool{true, false},
		}},
	}, Options{Width: 400, Height: 300})
	require.NoError(t, err)
	out := buf.String()
	wellFormed(t, out)
	assert.Contains(t, out, ">1044</text>")
	assert.NotContains(t, out, ">524</text>")
	assert.Contains(t, out, "<title>Musim Semi: 1044</title>")
	assert.Contains(t, out, fill(Green))
	// A single series has no legend.
	assert.NotContains(t, out, "fill-opacity:0.85")
}

func TestBarsGrouped(t *testing.T) {
	var buf bytes.Buffer
	nan := math.NaN()
	err := Bars(&buf, BarChart{
		Title:      "Grouped",
		Categories: []string{"Januari", "Februari", "Maret"},
		Series: []BarSeries{
			{Name: "Musim Semi", Color: Blue, Values: []float64{10, 20, nan}},
			{Name: "Musim Panas", Color: Orange, Values: []float64{nan, nan, 30}},
		},
		Legend: "Musim",
	}, Options{})
	require.NoError(t, err)
	out := buf.String()
	wellFormed(t, out)
	assert.Contains(t, out, ">Musim</text>")
	assert.Contains(t, out, ">Musim Panas</text>")
	assert.Contains(t, out, "<title>Maret, Musim Panas: 30</title>")
	assert.NotContains(t, out, "<title>Januari, Musim Panas")
}

func TestBarsEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Bars(&buf, BarChart{
		Title:      "Kosong",
		Categories: []string{"a"},
		Series:     []BarSeries{{Values: []float64{math.NaN()}}},
	}, Options{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), NoDataText)

	buf.Reset()
	require.NoError(t, Bars(&buf, BarChart{Title: "Kosong"}, Options{}))
	assert.Contains(t, buf.String(), NoDataText)
}

func TestBarsMismatch(t *testing.T) {
	err := Bars(io.Discard, BarChart{
		Categories: []string{"a", "b"},
		Series:     []BarSeries{{Name: "s", Values: []float64{1}}},
	}, Options{})
	assert.EqualError(t, err, `series "s" has 1 values for 2 categories`)
}

func TestBarsRotatesCrowdedLabels(t *testing.T) {
	cats := []string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
	vals := make([]float64, len(cats))
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	var buf bytes.Buffer
	require.NoError(t, Bars(&buf, BarChart{Categories: cats, Series: []BarSeries{{Color: Blue, Values: vals}}}, Options{Width: 300, Height: 300}))
	assert.Contains(t, buf.String(), "rotate(-45")

	buf.Reset()
	require.NoError(t, Bars(&buf, BarChart{Categories: cats[:2], Series: []BarSeries{{Color: Blue, Values: vals[:2]}}}, Options{Width: 800, Height: 300}))
	assert.NotContains(t, buf.String(), "rotate(-45")
}

func TestLines(t *testing.T) {
	months := []string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
	var buf bytes.Buffer
	err := Lines(&buf, LineChart{
		Title:   "Per Bulan",
		XMin:    1,
		XMax:    12,
		XFormat: func(x int) string { return months[x-1] },
		Series: []LineSeries{
			{Name: "Non-Hari Kerja", Color: Blue, X: []int{1, 4}, Y: []float64{169, 274}},
			{Name: "Hari Kerja", Color: Orange, X: []int{1, 4, 7}, Y: []float64{192, 250, 313}},
			{Name: "Kosong", Color: Red},
		},
	}, Options{})
	require.NoError(t, err)
	out := buf.String()
	wellFormed(t, out)
	// One dot per point.
	assert.Equal(t, 5, strings.Count(out, "<circle"))
	assert.Contains(t, out, ">Per Bulan</text>")
	assert.Contains(t, out, ">Des</text>")
	assert.Contains(t, out, ">Hari Kerja</text>")
	assert.NotContains(t, out, ">Kosong</text>")
}

func TestLinesErrors(t *testing.T) {
	for _, test := range []struct {
		series LineSeries
		want   string
	}{
		{LineSeries{Name: "a", X: []int{1}, Y: nil}, `series "a" has 1 X values but 0 Y values`},
		{LineSeries{Name: "b", X: []int{24}, Y: []float64{1}}, `series "b": X value 24 outside [0, 23]`},
	} {
		err := Lines(io.Discard, LineChart{XMin: 0, XMax: 23, Series: []LineSeries{test.series}}, Options{})
		assert.EqualError(t, err, test.want)
	}

	err := Lines(io.Discard, LineChart{XMin: 3, XMax: 3}, Options{})
	assert.EqualError(t, err, "empty X range [3, 3]")
}

func TestDrawingColor(t *testing.T) {
	c := drawingColor(Orange)
	assert.Equal(t, [4]uint8{0xff, 0x7f, 0x0e, 0xff}, [4]uint8{c.R, c.G, c.B, c.A})
	assert.Equal(t, uint8(255), drawingColor(nil).A)
}

func TestLinesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Lines(&buf, LineChart{Title: "Kosong", XMin: 0, XMax: 23}, Options{}))
	assert.Contains(t, buf.String(), NoDataText)
}

func TestHeatmap(t *testing.T) {
	var buf bytes.Buffer
	nan := math.NaN()
	err := Heatmap(&buf, HeatmapChart{
		Title:  "Heatmap",
		Labels: []string{"temp", "atemp", "yr"},
		Values: [][]float64{
			{1, 0.99, nan},
			{0.99, 1, nan},
			{nan, nan, nan},
		},
	}, Options{})
	require.NoError(t, err)
	out := buf.String()
	wellFormed(t, out)
	assert.Equal(t, 2, strings.Count(out, ">1.00</text>"))
	assert.Equal(t, 2, strings.Count(out, ">0.99</text>"))
	assert.Contains(t, out, "<title>temp × atemp: 0.99</title>")
	assert.NotContains(t, out, "yr × yr")
	// Color bar ticks.
	assert.Contains(t, out, ">-1</text>")
	assert.Contains(t, out, ">1</text>")
}

func TestHeatmapErrors(t *testing.T) {
	err := Heatmap(io.Discard, HeatmapChart{Labels: []string{"a", "b"}, Values: [][]float64{{1, 0}}}, Options{})
	assert.EqualError(t, err, "heatmap has 2 labels but 1 rows")
	err = Heatmap(io.Discard, HeatmapChart{Labels: []string{"a"}, Values: [][]float64{{1, 0}}}, Options{})
	assert.EqualError(t, err, "heatmap row 0 has 2 values, want 1")

	var buf bytes.Buffer
	require.NoError(t, Heatmap(&buf, HeatmapChart{Title: "Kosong"}, Options{}))
	assert.Contains(t, buf.String(), NoDataText)
}

func TestCoolWarm(t *testing.T) {
	assert.Equal(t, CoolWarm.Colors[0], CoolWarm.Map(unitRange(-1)))
	assert.Equal(t, CoolWarm.Colors[4], CoolWarm.Map(unitRange(1)))
	assert.Equal(t, CoolWarm.Colors[0], CoolWarm.Map(unitRange(-7)))
	assert.Equal(t, "white", textColor(CoolWarm.Colors[0]))
	assert.Equal(t, "#222", textColor(CoolWarm.Colors[2]))
}
