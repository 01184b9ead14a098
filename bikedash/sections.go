// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image/color"
	"io"
	"math"

	"github.com/aclements/bikedash/bikeshare"
	"github.com/aclements/bikedash/internal/chart"
)

// A section is one titled chart on the dashboard page.
type section struct {
	Name  string // URL name, as in /chart/{Name}.svg
	Title string // Section heading

	render func(w io.Writer, d *bikeshare.Dataset, o chart.Options) error
}

var sections = []*section{
	{"heatmap", "Heatmap Korelasi Antara Kolom", renderHeatmap},
	{"monthly", "Jumlah Penggunaan Sepeda Motor per Bulan Berdasarkan Hari Kerja", renderMonthly},
	{"extremes", "Jumlah Penggunaan Sepeda Motor Tertinggi dan Terendah Berdasarkan Hari Kerja", renderExtremes},
	{"season", "Total Penggunaan Sepeda Motor Berdasarkan Musim", renderSeason},
	{"season-month", "Total Penggunaan Sepeda Motor Berdasarkan Musim dan Bulan", renderSeasonMonth},
	{"season-workday", "Jumlah Penggunaan Sepeda Motor Berdasarkan Musim dan Hari Kerja", renderSeasonWorkday},
	{"hourly", "Rata-rata Penggunaan Sepeda Motor per Jam Berdasarkan Hari Kerja", renderHourly},
}

func findSection(name string) *section {
	for _, s := range sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// seasonColors and workingDayColors fix the color of each season and
// working day flag across charts.
var (
	seasonColors = map[bikeshare.Season]color.Color{
		bikeshare.Spring: chart.Blue,
		bikeshare.Summer: chart.Green,
		bikeshare.Fall:   chart.Orange,
		bikeshare.Winter: chart.Red,
	}
	workingDayColors = [2]color.Color{chart.Blue, chart.Orange}
)

const (
	labelCount  = "Jumlah"
	labelMonth  = "Bulan"
	labelSeason = "Musim"
)

func monthName(m int) string {
	return bikeshare.Month(m).String()
}

func renderHeatmap(w io.Writer, d *bikeshare.Dataset, o chart.Options) error {
	title := "Heatmap Korelasi Antara Kolom"
	if d.Len() == 0 {
		return chart.Empty(w, title, o)
	}
	m := bikeshare.Correlation(d)
	return chart.Heatmap(w, chart.HeatmapChart{
		Title:  title,
		Labels: m.Cols,
		Values: m.R,
	}, o)
}

func renderMonthly(w io.Writer, d *bikeshare.Dataset, o chart.Options) error {
	var series [2]chart.LineSeries
	for flag := range series {
		series[flag] = chart.LineSeries{
			Name:  bikeshare.WorkingDayLabel(flag),
			Color: workingDayColors[flag],
		}
	}
	for _, mt := range bikeshare.MonthlyByWorkingDay(d) {
		s := &series[mt.WorkingDay]
		s.X = append(s.X, int(mt.Month))
		s.Y = append(s.Y, mt.Total)
	}
	return chart.Lines(w, chart.LineChart{
		Title:   "Penggunaan Sepeda Motor per Bulan Berdasarkan Hari Kerja",
		XLabel:  labelMonth,
		YLabel:  labelCount,
		XMin:    1,
		XMax:    12,
		XFormat: monthName,
		Series:  series[:],
	}, o)
}

func renderExtremes(w io.Writer, d *bikeshare.Dataset, o chart.Options) error {
	e := bikeshare.WorkingDayExtremes(bikeshare.MonthlyByWorkingDay(d))
	nan := math.NaN()
	values := []float64{nan, nan, nan, nan}
	if e.HasWork {
		values[0], values[1] = e.MaxWork, e.MinWork
	}
	if e.HasNotWork {
		values[2], values[3] = e.MaxNotWork, e.MinNotWork
	}
	return chart.Bars(w, chart.BarChart{
		Title:      "Jumlah Penggunaan Sepeda Motor Tertinggi dan Terendah Berdasarkan Hari Kerja",
		YLabel:     labelCount,
		Categories: []string{"Max Work", "Min Work", "Max Not Work", "Min Not Work"},
		Series: []chart.BarSeries{{
			Colors: []color.Color{workingDayColors[1], workingDayColors[1], workingDayColors[0], workingDayColors[0]},
			Values: values,
			Labels: []bool{true, true, true, true},
		}},
	}, o)
}

func renderSeason(w io.Writer, d *bikeshare.Dataset, o chart.Options) error {
	totals := bikeshare.SeasonTotals(d)
	s := chart.BarSeries{
		Values: make([]float64, len(totals)),
		Colors: make([]color.Color, len(totals)),
		Labels: make([]bool, len(totals)),
	}
	cats := make([]string, len(totals))
	for i, st := range totals {
		cats[i] = st.Season.Label()
		s.Values[i] = st.Total
		s.Colors[i] = seasonColors[st.Season]
	}
	if i := bikeshare.MaxSeason(totals); i >= 0 {
		s.Labels[i] = true
	}
	if i := bikeshare.MinSeason(totals); i >= 0 {
		s.Labels[i] = true
	}
	return chart.Bars(w, chart.BarChart{
		Title:      "Total Penggunaan Sepeda Motor Berdasarkan Musim",
		XLabel:     labelSeason,
		YLabel:     labelCount,
		Categories: cats,
		Series:     []chart.BarSeries{s},
	}, o)
}

func renderSeasonMonth(w io.Writer, d *bikeshare.Dataset, o chart.Options) error {
	totals := bikeshare.SeasonMonthTotals(d)
	cats := make([]string, 12)
	for i := range cats {
		cats[i] = monthName(i + 1)
	}
	var series []chart.BarSeries
	for _, season := range bikeshare.Seasons {
		row := totals[season]
		if row == nil {
			continue
		}
		series = append(series, chart.BarSeries{
			Name:   season.Label(),
			Color:  seasonColors[season],
			Values: row[:],
		})
	}
	return chart.Bars(w, chart.BarChart{
		Title:      "Total Penggunaan Sepeda Motor Berdasarkan Musim dan Bulan",
		XLabel:     labelMonth,
		YLabel:     labelCount,
		Categories: cats,
		Series:     series,
		Legend:     labelSeason,
	}, o)
}

func renderSeasonWorkday(w io.Writer, d *bikeshare.Dataset, o chart.Options) error {
	totals := bikeshare.SeasonWorkingDayTotals(d)

	// One category per observed season, in season order.
	var seasons []bikeshare.Season
	index := make(map[bikeshare.Season]int)
	for _, t := range totals {
		if _, ok := index[t.Season]; !ok {
			index[t.Season] = len(seasons)
			seasons = append(seasons, t.Season)
		}
	}
	cats := make([]string, len(seasons))
	for i, s := range seasons {
		cats[i] = s.Label()
	}

	var series []chart.BarSeries
	for flag := 0; flag < 2; flag++ {
		s := chart.BarSeries{
			Name:   bikeshare.WorkingDayLabel(flag),
			Color:  workingDayColors[flag],
			Values: make([]float64, len(seasons)),
			Labels: make([]bool, len(seasons)),
		}
		for i := range s.Values {
			s.Values[i] = math.NaN()
			s.Labels[i] = true
		}
		found := false
		for _, t := range totals {
			if t.WorkingDay == flag {
				s.Values[index[t.Season]] = t.Total
				found = true
			}
		}
		if found {
			series = append(series, s)
		}
	}
	return chart.Bars(w, chart.BarChart{
		Title:      "Total Penggunaan Sepeda Motor Berdasarkan Musim dan Hari Kerja",
		XLabel:     labelSeason,
		YLabel:     labelCount,
		Categories: cats,
		Series:     series,
	}, o)
}

func renderHourly(w io.Writer, d *bikeshare.Dataset, o chart.Options) error {
	var series [2]chart.LineSeries
	for flag := range series {
		series[flag] = chart.LineSeries{
			Name:  bikeshare.WorkingDayLabel(flag),
			Color: workingDayColors[flag],
		}
	}
	for _, hm := range bikeshare.HourlyProfile(d) {
		s := &series[hm.WorkingDay]
		s.X = append(s.X, hm.Hr)
		s.Y = append(s.Y, hm.Mean)
	}
	return chart.Lines(w, chart.LineChart{
		Title:  "Rata-rata Penggunaan Sepeda Motor per Jam Berdasarkan Hari Kerja",
		XLabel: "Jam",
		YLabel: "Rata-rata " + labelCount,
		XMin:   0,
		XMax:   23,
		Series: series[:],
	}, o)
}
