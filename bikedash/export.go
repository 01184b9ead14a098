// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"

	"github.com/aclements/bikedash/bikeshare"
	"github.com/xuri/excelize/v2"
)

// A sheet is one worksheet of the exported workbook: a header row
// followed by data rows. Each sheet holds the numbers behind one
// dashboard chart.
type sheet struct {
	name   string
	header []string
	rows   [][]any
}

// exportSheets computes the aggregations of d for each chart.
func exportSheets(d *bikeshare.Dataset) []sheet {
	var sheets []sheet

	corr := bikeshare.Correlation(d)
	s := sheet{name: "Korelasi", header: append([]string{""}, corr.Cols...)}
	for i, col := range corr.Cols {
		row := []any{col}
		for _, v := range corr.R[i] {
			row = append(row, v)
		}
		s.rows = append(s.rows, row)
	}
	sheets = append(sheets, s)

	monthly := bikeshare.MonthlyByWorkingDay(d)
	s = sheet{name: "Bulanan", header: []string{"Bulan", "Hari Kerja", "Jumlah"}}
	for _, m := range monthly {
		s.rows = append(s.rows, []any{m.Month.String(), bikeshare.WorkingDayLabel(m.WorkingDay), m.Total})
	}
	sheets = append(sheets, s)

	e := bikeshare.WorkingDayExtremes(monthly)
	s = sheet{name: "Tertinggi-Terendah", header: []string{"Kategori", "Jumlah"}}
	if e.HasWork {
		s.rows = append(s.rows, []any{"Max Work", e.MaxWork}, []any{"Min Work", e.MinWork})
	}
	if e.HasNotWork {
		s.rows = append(s.rows, []any{"Max Not Work", e.MaxNotWork}, []any{"Min Not Work", e.MinNotWork})
	}
	sheets = append(sheets, s)

	s = sheet{name: "Musim", header: []string{"Musim", "Jumlah"}}
	for _, t := range bikeshare.SeasonTotals(d) {
		s.rows = append(s.rows, []any{t.Season.Label(), t.Total})
	}
	sheets = append(sheets, s)

	s = sheet{name: "Musim-Bulan", header: []string{"Bulan"}}
	sm := bikeshare.SeasonMonthTotals(d)
	var seasons []bikeshare.Season
	for _, season := range bikeshare.Seasons {
		if sm[season] != nil {
			seasons = append(seasons, season)
			s.header = append(s.header, season.Label())
		}
	}
	for m := 1; m <= 12; m++ {
		row := []any{bikeshare.Month(m).String()}
		for _, season := range seasons {
			row = append(row, sm[season][m-1])
		}
		s.rows = append(s.rows, row)
	}
	sheets = append(sheets, s)

	s = sheet{name: "Musim-Hari Kerja", header: []string{"Musim", "Hari Kerja", "Jumlah"}}
	for _, t := range bikeshare.SeasonWorkingDayTotals(d) {
		s.rows = append(s.rows, []any{t.Season.Label(), bikeshare.WorkingDayLabel(t.WorkingDay), t.Total})
	}
	sheets = append(sheets, s)

	s = sheet{name: "Per Jam", header: []string{"Jam", "Hari Kerja", "Rata-rata"}}
	for _, h := range bikeshare.HourlyProfile(d) {
		s.rows = append(s.rows, []any{h.Hr, bikeshare.WorkingDayLabel(h.WorkingDay), h.Mean})
	}
	sheets = append(sheets, s)

	return sheets
}

// newWorkbook builds a workbook with one sheet per chart for d. The
// caller must close the returned file.
func newWorkbook(d *bikeshare.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#DDEBF7"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, s := range exportSheets(d) {
		idx, err := f.NewSheet(s.name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for col, h := range s.header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range s.rows {
		for col, v := range row {
			// Leave unobserved values blank.
			if x, ok := v.(float64); ok && math.IsNaN(x) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(s.name, cell, v); err != nil {
				return err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(s.header))
	return f.SetColWidth(s.name, "A", lastCol, 16)
}

// writeWorkbook writes the workbook for d to w.
func writeWorkbook(w io.Writer, d *bikeshare.Dataset) error {
	f, err := newWorkbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
