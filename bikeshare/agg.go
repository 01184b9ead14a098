// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bikeshare

import (
	"math"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// Total returns the total rental count of d.
func Total(d *Dataset) float64 {
	if d.Len() == 0 {
		return 0
	}
	return stats.Sample{Xs: floatCol(d.Table(), "cnt")}.Sum()
}

// A Matrix is a square matrix of pairwise column statistics.
type Matrix struct {
	Cols []string
	R    [][]float64 // R[i][j] relates Cols[i] and Cols[j]
}

// Correlation returns the Pearson correlation coefficient between
// every pair of NumericColumns of d. The coefficient is NaN for any
// pair involving a column with no variance, and for every pair if d
// has fewer than two rows.
func Correlation(d *Dataset) Matrix {
	cols := NumericColumns
	m := Matrix{Cols: cols, R: make([][]float64, len(cols))}
	for i := range m.R {
		m.R[i] = make([]float64, len(cols))
	}

	// Center each column and compute its norm once.
	t := d.Table()
	centered := make([][]float64, len(cols))
	norms := make([]float64, len(cols))
	for i, col := range cols {
		xs := floatCol(t, col)
		if len(xs) < 2 {
			norms[i] = math.NaN()
			continue
		}
		mean := stats.Mean(xs)
		var ss float64
		for j, x := range xs {
			xs[j] = x - mean
			ss += xs[j] * xs[j]
		}
		centered[i], norms[i] = xs, math.Sqrt(ss)
	}

	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := math.NaN()
			if norms[i] > 0 && norms[j] > 0 {
				var dot float64
				for k, x := range centered[i] {
					dot += x * centered[j][k]
				}
				r = dot / (norms[i] * norms[j])
				// Clamp rounding error.
				r = math.Max(-1, math.Min(1, r))
			}
			m.R[i][j], m.R[j][i] = r, r
		}
	}
	return m
}

// MonthTotal is the total count for one month and working day flag.
type MonthTotal struct {
	Month      Month
	WorkingDay int
	Total      float64
}

// MonthlyByWorkingDay returns the total count of d for each observed
// (month, workingday) pair, ordered by workingday and then month.
func MonthlyByWorkingDay(d *Dataset) []MonthTotal {
	t := sumCnt(d, "mnth", "workingday")
	if t == nil {
		return nil
	}
	months := t.MustColumn("mnth").([]Month)
	flags := t.MustColumn("workingday").([]int)
	sums := floatCol(t, "sum cnt")
	out := make([]MonthTotal, len(months))
	for i := range out {
		out[i] = MonthTotal{months[i], flags[i], sums[i]}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkingDay != out[j].WorkingDay {
			return out[i].WorkingDay < out[j].WorkingDay
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// Extremes holds the largest and smallest monthly totals on working
// and non-working days.
type Extremes struct {
	MaxWork, MinWork       float64
	MaxNotWork, MinNotWork float64

	// HasWork and HasNotWork report whether any working or
	// non-working day was observed. If not, the corresponding
	// extremes are 0.
	HasWork, HasNotWork bool
}

// WorkingDayExtremes returns the extremes of the monthly totals
// computed by MonthlyByWorkingDay.
func WorkingDayExtremes(monthly []MonthTotal) Extremes {
	var work, notWork []float64
	for _, mt := range monthly {
		if mt.WorkingDay == 1 {
			work = append(work, mt.Total)
		} else {
			notWork = append(notWork, mt.Total)
		}
	}
	var e Extremes
	if len(work) > 0 {
		e.HasWork = true
		e.MinWork, e.MaxWork = stats.Bounds(work)
	}
	if len(notWork) > 0 {
		e.HasNotWork = true
		e.MinNotWork, e.MaxNotWork = stats.Bounds(notWork)
	}
	return e
}

// SeasonTotal is the total count for one season.
type SeasonTotal struct {
	Season Season
	Total  float64
}

// SeasonTotals returns the total count of d for each observed
// season, in season order.
func SeasonTotals(d *Dataset) []SeasonTotal {
	t := sumCnt(d, "season")
	if t == nil {
		return nil
	}
	seasons := t.MustColumn("season").([]Season)
	sums := floatCol(t, "sum cnt")
	out := make([]SeasonTotal, len(seasons))
	for i := range out {
		out[i] = SeasonTotal{seasons[i], sums[i]}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out
}

// MaxSeason returns the index in totals of the season with the
// largest total. Ties go to the earliest season. It returns -1 if
// totals is empty.
func MaxSeason(totals []SeasonTotal) int {
	return extremeSeason(totals, func(a, b float64) bool { return a > b })
}

// MinSeason is like MaxSeason, but for the smallest total.
func MinSeason(totals []SeasonTotal) int {
	return extremeSeason(totals, func(a, b float64) bool { return a < b })
}

func extremeSeason(totals []SeasonTotal, better func(a, b float64) bool) int {
	best := -1
	for i, st := range totals {
		if best < 0 || better(st.Total, totals[best].Total) {
			best = i
		}
	}
	return best
}

// SeasonMonthTotals returns the total count of d for each season and
// month. Months with no observations in a season are NaN. Seasons
// with no observations at all are omitted.
func SeasonMonthTotals(d *Dataset) map[Season]*[12]float64 {
	t := sumCnt(d, "season", "mnth")
	if t == nil {
		return nil
	}
	seasons := t.MustColumn("season").([]Season)
	months := t.MustColumn("mnth").([]Month)
	sums := floatCol(t, "sum cnt")
	out := make(map[Season]*[12]float64)
	for i, s := range seasons {
		row := out[s]
		if row == nil {
			row = new([12]float64)
			for j := range row {
				row[j] = math.NaN()
			}
			out[s] = row
		}
		row[months[i]-1] = sums[i]
	}
	return out
}

// SeasonWorkingDay is the total count for one season and working day
// flag.
type SeasonWorkingDay struct {
	Season     Season
	WorkingDay int
	Total      float64
}

// SeasonWorkingDayTotals returns the total count of d for each
// observed (season, workingday) pair, ordered by season and then
// workingday.
func SeasonWorkingDayTotals(d *Dataset) []SeasonWorkingDay {
	t := sumCnt(d, "season", "workingday")
	if t == nil {
		return nil
	}
	seasons := t.MustColumn("season").([]Season)
	flags := t.MustColumn("workingday").([]int)
	sums := floatCol(t, "sum cnt")
	out := make([]SeasonWorkingDay, len(seasons))
	for i := range out {
		out[i] = SeasonWorkingDay{seasons[i], flags[i], sums[i]}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return out[i].WorkingDay < out[j].WorkingDay
	})
	return out
}

// HourMean is the mean hourly count for one hour of the day and
// working day flag.
type HourMean struct {
	Hr         int
	WorkingDay int
	Mean       float64
}

// HourlyProfile returns the mean count of d for each observed
// (workingday, hour) pair, ordered by workingday and then hour.
func HourlyProfile(d *Dataset) []HourMean {
	t := meanCnt(d, "workingday", "hr")
	if t == nil {
		return nil
	}
	hrs := t.MustColumn("hr").([]int)
	flags := t.MustColumn("workingday").([]int)
	means := floatCol(t, "mean cnt")
	out := make([]HourMean, len(hrs))
	for i := range out {
		out[i] = HourMean{hrs[i], flags[i], means[i]}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkingDay != out[j].WorkingDay {
			return out[i].WorkingDay < out[j].WorkingDay
		}
		return out[i].Hr < out[j].Hr
	})
	return out
}

// sumCnt groups d by xs and sums the cnt column of each group into
// column "sum cnt". The result has one row per group. It returns nil
// if d is empty.
func sumCnt(d *Dataset, xs ...string) *table.Table {
	if d.Len() == 0 {
		return nil
	}
	g := table.Grouping(d.Table())
	for _, x := range xs {
		g = table.GroupBy(g, x)
	}
	g = table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		sum := stats.Sample{Xs: floatCol(t, "cnt")}.Sum()
		head := table.Head(t, 1).Table(table.RootGroupID)
		return table.NewBuilder(head).Add("sum cnt", []float64{sum}).Done()
	})
	return table.Flatten(g)
}

// meanCnt groups d by xs and averages the cnt column of each group,
// converted to float64 so means are not truncated, into column
// "mean cnt". It returns nil if d is empty.
func meanCnt(d *Dataset, xs ...string) *table.Table {
	if d.Len() == 0 {
		return nil
	}
	g := convertFloat{[]string{"cnt"}}.F(d.Table())
	g = ggstat.Agg(xs...)(ggstat.AggMean("cnt")).F(g)
	return table.Flatten(g)
}

// convertFloat is a gg.Stat that converts cols to []float64.
type convertFloat struct {
	cols []string
}

func (c convertFloat) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		b := table.NewBuilder(t)
		for _, col := range c.cols {
			b.Add(col, floatCol(t, col))
		}
		return b.Done()
	})
}

// floatCol returns a fresh []float64 copy of column col of t.
func floatCol(t *table.Table, col string) []float64 {
	var xs []float64
	slice.Convert(&xs, t.MustColumn(col))
	// Convert aliases []float64 columns and callers may modify xs.
	return append([]float64(nil), xs...)
}
