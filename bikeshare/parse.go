// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bikeshare

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// maxRowErrors bounds the number of row errors Parse collects before
// giving up on the rest of the file.
const maxRowErrors = 20

// A RowError records a problem with a single line of the input.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Parse parses an hour.csv file from r. The first record must be a
// header naming every column in Columns; columns may appear in any
// order and unknown columns are ignored.
//
// If any row is malformed, Parse returns no rows and an error
// describing every malformed row (up to a limit), each as a
// *RowError.
func Parse(r io.Reader) ([]Hour, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty input")
	} else if err != nil {
		return nil, err
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []Hour
	var errs *multierror.Error
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, err
			}
			errs = multierror.Append(errs, &RowError{perr.Line, perr.Err})
		} else if h, err := parseRow(rec, idx); err != nil {
			line, _ := cr.FieldPos(0)
			errs = multierror.Append(errs, &RowError{line, err})
		} else if errs == nil {
			rows = append(rows, h)
		}
		if errs != nil && len(errs.Errors) >= maxRowErrors {
			errs = multierror.Append(errs, errors.New("too many errors"))
			break
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return rows, nil
}

// columnIndex maps each of Columns to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			// Tolerate a UTF-8 byte order mark.
			name = strings.TrimPrefix(name, "\ufeff")
		}
		idx[name] = i
	}
	var missing []string
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

type rowParser struct {
	rec []string
	idx map[string]int
	err error
}

func (p *rowParser) field(col string) string {
	return strings.TrimSpace(p.rec[p.idx[col]])
}

func (p *rowParser) int(col string, lo, hi int) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(p.field(col))
	if err != nil {
		p.err = fmt.Errorf("%s: %w", col, err)
		return 0
	}
	if v < lo || v > hi {
		p.err = fmt.Errorf("%s: %d out of range [%d, %d]", col, v, lo, hi)
		return 0
	}
	return v
}

func (p *rowParser) float(col string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(p.field(col), 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

func (p *rowParser) date(col string) time.Time {
	if p.err != nil {
		return time.Time{}
	}
	v, err := time.Parse(DateLayout, p.field(col))
	if err != nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

const maxCount = 1<<31 - 1

func parseRow(rec []string, idx map[string]int) (Hour, error) {
	p := rowParser{rec: rec, idx: idx}
	h := Hour{
		Instant:    p.int("instant", 0, maxCount),
		Date:       p.date("dteday"),
		Season:     Season(p.int("season", int(Spring), int(Winter))),
		Year:       p.int("yr", 0, 1),
		Month:      Month(p.int("mnth", 1, 12)),
		Hr:         p.int("hr", 0, 23),
		Holiday:    p.int("holiday", 0, 1),
		Weekday:    p.int("weekday", 0, 6),
		WorkingDay: p.int("workingday", 0, 1),
		Weathersit: p.int("weathersit", 1, 4),
		Temp:       p.float("temp"),
		ATemp:      p.float("atemp"),
		Hum:        p.float("hum"),
		Windspeed:  p.float("windspeed"),
		Casual:     p.int("casual", 0, maxCount),
		Registered: p.int("registered", 0, maxCount),
		Cnt:        p.int("cnt", 0, maxCount),
	}
	return h, p.err
}
