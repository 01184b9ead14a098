// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/aclements/bikedash/bikeshare"
	"github.com/aclements/bikedash/internal/chart"
)

const pageTitle = "Visualisasi Penggunaan Sepeda Motor"

// A view is the dataset restricted to a date range.
type view struct {
	full       *bikeshare.Dataset
	d          *bikeshare.Dataset
	start, end time.Time
}

func newView(full *bikeshare.Dataset, start, end time.Time) view {
	return view{full, full.Filter(start, end), start, end}
}

type pageData struct {
	Title      string
	Static     bool
	Start, End string
	Min, Max   string
	Rows       int
	Sections   []pageSection
}

type pageSection struct {
	Name  string
	Title string
	SVG   template.HTML
}

// renderFunc renders one section. It lets the server time each
// render.
type renderFunc func(w io.Writer, s *section, v view) error

func renderSection(w io.Writer, s *section, v view, o chart.Options) error {
	return s.render(w, v.d, o)
}

// renderPage renders the dashboard page for v to w. If static is
// set, the page has no date form or links back to a server.
func renderPage(w io.Writer, v view, static bool, render renderFunc) error {
	lo, hi := v.full.DateRange()
	data := pageData{
		Title:  pageTitle,
		Static: static,
		Start:  v.start.Format(bikeshare.DateLayout),
		End:    v.end.Format(bikeshare.DateLayout),
		Min:    lo.Format(bikeshare.DateLayout),
		Max:    hi.Format(bikeshare.DateLayout),
		Rows:   v.d.Len(),
	}
	for _, s := range sections {
		var buf bytes.Buffer
		if err := render(&buf, s, v); err != nil {
			return fmt.Errorf("rendering %s: %w", s.Name, err)
		}
		data.Sections = append(data.Sections, pageSection{s.Name, s.Title, inlineSVG(buf.Bytes())})
	}

	// Render to a buffer so a template error doesn't leave a
	// partial page.
	var buf bytes.Buffer
	if err := tmplPage.Execute(&buf, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// inlineSVG strips the XML prolog from a standalone SVG document so
// it can be embedded in HTML.
func inlineSVG(doc []byte) template.HTML {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}
	return template.HTML(doc)
}

var tmplPage = template.Must(template.New("").Parse(`<!DOCTYPE html>
<html lang="id"><head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: sans-serif; display: flex; }
#sidebar { width: 220px; min-height: 100vh; padding: 16px; background: #f0f2f6; box-sizing: border-box; flex: none; }
#sidebar label { display: block; margin: 12px 0 4px; font-size: 14px; }
#main { padding: 16px 32px; flex: auto; }
#main svg { max-width: 100%; height: auto; }
.note { color: #555; font-size: 13px; }
</style>
</head><body>
<div id="sidebar">
<h3>Range Tanggal</h3>
{{if .Static}}
<p>Start Date<br><b>{{.Start}}</b></p>
<p>End Date<br><b>{{.End}}</b></p>
{{else}}
<form method="get" action="/">
<label for="start">Start Date</label>
<input type="date" id="start" name="start" value="{{.Start}}" min="{{.Min}}" max="{{.Max}}">
<label for="end">End Date</label>
<input type="date" id="end" name="end" value="{{.End}}" min="{{.Min}}" max="{{.Max}}">
<p><input type="submit" value="Terapkan"></p>
</form>
{{end}}
<p class="note">{{.Rows}} baris</p>
</div>
<div id="main">
<h1>{{.Title}}</h1>
{{if not .Static}}
<p><a href="/export.xlsx?start={{.Start}}&amp;end={{.End}}">Unduh Excel</a></p>
{{end}}
{{range .Sections}}
<section id="{{.Name}}">
<h2>{{.Title}}</h2>
{{.SVG}}
</section>
{{end}}
</div>
</body></html>
`))
