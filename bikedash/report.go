// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/bikedash/bikeshare"
	"github.com/aclements/bikedash/internal/chart"
	"github.com/aclements/bikedash/internal/config"
)

// writeReport writes the dashboard for the dates between start and
// end to path. An empty start or end means the corresponding end of
// the dataset. If path ends in .xlsx, the report is an Excel workbook;
// otherwise it is a standalone HTML page.
func writeReport(ctx context.Context, cfg *config.Config, loader *bikeshare.Loader, path, start, end string) error {
	full, err := loader.Load(ctx, cfg.Data.Path)
	if err != nil {
		return err
	}
	v, err := reportView(full, start, end)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := newWorkbook(v.d)
		if err != nil {
			return err
		}
		defer f.Close()
		return f.SaveAs(path)
	}

	o := chart.Options{Width: cfg.Charts.Width, Height: cfg.Charts.Height}
	var buf bytes.Buffer
	err = renderPage(&buf, v, true, func(w io.Writer, s *section, v view) error {
		return renderSection(w, s, v, o)
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o666)
}

func reportView(full *bikeshare.Dataset, start, end string) (view, error) {
	lo, hi := full.DateRange()
	s, err := parseDate(start, lo)
	if err != nil {
		return view{}, err
	}
	e, err := parseDate(end, hi)
	if err != nil {
		return view{}, err
	}
	return newView(full, s, e), nil
}
