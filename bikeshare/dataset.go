// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bikeshare

import (
	"sync"
	"time"

	"github.com/aclements/go-gg/table"
)

// A Dataset is an immutable set of hourly observations.
type Dataset struct {
	rows []Hour

	tabOnce sync.Once
	tab     *table.Table
}

// NewDataset returns a Dataset of rows. The caller must not modify
// rows after calling NewDataset.
func NewDataset(rows []Hour) *Dataset {
	return &Dataset{rows: rows}
}

// Len returns the number of observations in d.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns the observations in d. The caller must not modify the
// returned slice.
func (d *Dataset) Rows() []Hour {
	return d.rows
}

// DateRange returns the earliest and latest dates in d. If d is
// empty, both are the zero Time.
func (d *Dataset) DateRange() (min, max time.Time) {
	for i, h := range d.rows {
		if i == 0 || h.Date.Before(min) {
			min = h.Date
		}
		if i == 0 || h.Date.After(max) {
			max = h.Date
		}
	}
	return
}

// Filter returns the observations of d whose date is between start
// and end, inclusive. Only the calendar dates of start and end are
// considered. If start is after end, the result is empty.
func (d *Dataset) Filter(start, end time.Time) *Dataset {
	start, end = Day(start), Day(end)
	var rows []Hour
	if !start.After(end) {
		for _, h := range d.rows {
			if !h.Date.Before(start) && !h.Date.After(end) {
				rows = append(rows, h)
			}
		}
	}
	return NewDataset(rows)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// Table returns d as a go-gg table with one column per dataset
// column. dteday is a []time.Time, season is a []Season, mnth is a
// []Month, the weather measurements are []float64 and all other
// columns are []int.
func (d *Dataset) Table() *table.Table {
	d.tabOnce.Do(func() { d.tab = d.buildTable() })
	return d.tab
}

func (d *Dataset) buildTable() *table.Table {
	n := len(d.rows)
	ints := func() []int { return make([]int, n) }
	floats := func() []float64 { return make([]float64, n) }
	instant, yr, hr, holiday, weekday := ints(), ints(), ints(), ints(), ints()
	workingday, weathersit := ints(), ints()
	casual, registered, cnt := ints(), ints(), ints()
	temp, atemp, hum, windspeed := floats(), floats(), floats(), floats()
	dteday := make([]time.Time, n)
	season := make([]Season, n)
	mnth := make([]Month, n)
	for i := range d.rows {
		h := &d.rows[i]
		instant[i], dteday[i], season[i], yr[i] = h.Instant, h.Date, h.Season, h.Year
		mnth[i], hr[i], holiday[i], weekday[i] = h.Month, h.Hr, h.Holiday, h.Weekday
		workingday[i], weathersit[i] = h.WorkingDay, h.Weathersit
		temp[i], atemp[i], hum[i], windspeed[i] = h.Temp, h.ATemp, h.Hum, h.Windspeed
		casual[i], registered[i], cnt[i] = h.Casual, h.Registered, h.Cnt
	}

	return new(table.Builder).
		Add("instant", instant).
		Add("dteday", dteday).
		Add("season", season).
		Add("yr", yr).
		Add("mnth", mnth).
		Add("hr", hr).
		Add("holiday", holiday).
		Add("weekday", weekday).
		Add("workingday", workingday).
		Add("weathersit", weathersit).
		Add("temp", temp).
		Add("atemp", atemp).
		Add("hum", hum).
		Add("windspeed", windspeed).
		Add("casual", casual).
		Add("registered", registered).
		Add("cnt", cnt).
		Done()
}
