// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bikeshare reads and aggregates the hourly bike sharing
// dataset (hour.csv).
//
// Each row of the dataset records the rentals for one hour together
// with the calendar and weather attributes of that hour. The columns
// are, in file order:
//
//	instant,dteday,season,yr,mnth,hr,holiday,weekday,workingday,
//	weathersit,temp,atemp,hum,windspeed,casual,registered,cnt
//
// Parse reads such a file into a slice of Hour, and Dataset provides
// date range filtering and conversion to a go-gg table, which the
// aggregation functions in this package operate on.
package bikeshare

import (
	"fmt"
	"time"
)

// Hour is a single hourly observation.
type Hour struct {
	Instant    int
	Date       time.Time // dteday, UTC midnight
	Season     Season
	Year       int // 0 for 2011, 1 for 2012
	Month      Month
	Hr         int
	Holiday    int
	Weekday    int
	WorkingDay int
	Weathersit int
	Temp       float64
	ATemp      float64
	Hum        float64
	Windspeed  float64
	Casual     int
	Registered int
	Cnt        int
}

// Season is one of the four calendar seasons, numbered from 1
// (spring) to 4 (winter) as in the dataset.
type Season int

const (
	Spring Season = 1 + iota
	Summer
	Fall
	Winter
)

// Seasons lists all seasons in dataset order.
var Seasons = []Season{Spring, Summer, Fall, Winter}

var seasonNames = [...]string{"Semi", "Panas", "Gugur", "Dingin"}

// String returns the Indonesian name of s.
func (s Season) String() string {
	if s < Spring || s > Winter {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonNames[s-1]
}

// Label returns the display label of s, such as "Musim Semi".
func (s Season) Label() string {
	return "Musim " + s.String()
}

// Month is a calendar month numbered from 1 to 12.
type Month int

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// String returns the Indonesian name of m.
//
// Month is used directly as a go-gg column type, so this also
// determines the tick labels of any axis over months.
func (m Month) String() string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m-1]
}

// WorkingDayLabel returns the display label for a workingday flag.
func WorkingDayLabel(flag int) string {
	if flag == 1 {
		return "Hari Kerja"
	}
	return "Non-Hari Kerja"
}

// Columns lists the dataset's columns in file order.
var Columns = []string{
	"instant", "dteday", "season", "yr", "mnth", "hr", "holiday",
	"weekday", "workingday", "weathersit", "temp", "atemp", "hum",
	"windspeed", "casual", "registered", "cnt",
}

// NumericColumns lists the columns that take part in correlation,
// which is every column except the date.
var NumericColumns = []string{
	"instant", "season", "yr", "mnth", "hr", "holiday",
	"weekday", "workingday", "weathersit", "temp", "atemp", "hum",
	"windspeed", "casual", "registered", "cnt",
}

// DateLayout is the layout of the dteday column and of dates in
// query strings and flags.
const DateLayout = "2006-01-02"
