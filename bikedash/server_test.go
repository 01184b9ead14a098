// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aclements/bikedash/bikeshare"
	"github.com/aclements/bikedash/internal/chart"
	"github.com/aclements/bikedash/internal/config"
	"github.com/aclements/bikedash/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, modify func(c *config.Config)) (*server, *metrics.Metrics) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Path = samplePath
	if modify != nil {
		modify(cfg)
	}
	m := metrics.NewMetricsForTesting()
	return newServer(cfg, new(bikeshare.Loader), zerolog.Nop(), m), m
}

func get(s http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	s, m := newTestServer(t, nil)
	rec := get(s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeJSON(t, rec)["status"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET /healthz", "200")))
}

func TestReadyz(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(s, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", decodeJSON(t, rec)["status"])

	require.Equal(t, http.StatusOK, get(s, "/").Code)
	rec = get(s, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decodeJSON(t, rec)["status"])
}

func TestPage(t *testing.T) {
	s, m := newTestServer(t, nil)
	rec := get(s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Visualisasi Penggunaan Sepeda Motor</title>")
	assert.Contains(t, body, "Range Tanggal")
	assert.Contains(t, body, `name="start" value="2011-01-01"`)
	assert.Contains(t, body, `name="end" value="2011-12-27"`)
	assert.Contains(t, body, "20 baris")
	for _, sec := range sections {
		assert.Contains(t, body, "<h2>"+sec.Title+"</h2>")
		assert.Contains(t, body, `<section id="`+sec.Name+`">`)
	}
	// The sidebar holds only the date form; the export link is in the main area.
	sidebar, content, ok := strings.Cut(body, `<div id="main">`)
	require.True(t, ok)
	assert.NotContains(t, sidebar, "export.xlsx")
	assert.Contains(t, content, `<a href="/export.xlsx?start=2011-01-01&amp;end=2011-12-27">Unduh Excel</a>`)
	assert.NotContains(t, body, "<?xml")
	assert.NotContains(t, body, chart.NoDataText)

	assert.Equal(t, 20.0, testutil.ToFloat64(m.DatasetRows))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.FilteredRows))
	// One render duration series per chart.
	assert.Equal(t, len(sections), testutil.CollectAndCount(m.RenderDuration))
}

func TestPageRange(t *testing.T) {
	s, m := newTestServer(t, nil)
	rec := get(s, "/?start=2011-04-01&end=2011-07-04")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="start" value="2011-04-01"`)
	assert.Contains(t, rec.Body.String(), "6 baris")
	assert.Equal(t, 6.0, testutil.ToFloat64(m.FilteredRows))

	// A reversed range is empty, not an error.
	rec = get(s, "/?start=2011-12-01&end=2011-01-01")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0 baris")
	assert.Contains(t, rec.Body.String(), chart.NoDataText)
}

func TestBadDate(t *testing.T) {
	s, m := newTestServer(t, nil)
	for _, target := range []string{"/?start=01/02/2011", "/chart/season.svg?end=tomorrow", "/export.xlsx?start=2011-13-01"} {
		rec := get(s, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "want YYYY-MM-DD", target)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET /{$}", "400")))
}

func TestChart(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(s, "/chart/season.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<title>Musim Semi: 1044</title>")

	rec = get(s, "/chart/season.svg?start=2011-04-01&end=2011-04-30")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Musim Panas: 524</title>")
	assert.NotContains(t, rec.Body.String(), "Musim Semi")

	for _, target := range []string{"/chart/nope.svg", "/chart/season.png", "/chart/season"} {
		assert.Equal(t, http.StatusNotFound, get(s, target).Code, target)
	}
}

func TestExport(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(s, "/export.xlsx?start=2011-04-01&end=2011-07-04")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bikedash-2011-04-01-2011-07-04.xlsx"`, rec.Header().Get("Content-Disposition"))

	f := openWorkbook(t, rec.Body.Bytes())
	rows, err := f.GetRows("Musim")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Musim", "Jumlah"}, {"Musim Panas", "524"}, {"Musim Gugur", "330"}}, rows)
}

func TestMissingDataset(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) {
		c.Data.Path = filepath.Join(t.TempDir(), "missing.csv")
	})
	assert.Equal(t, http.StatusInternalServerError, get(s, "/").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(s, "/readyz").Code)
}

func TestRateLimit(t *testing.T) {
	s, m := newTestServer(t, func(c *config.Config) {
		c.HTTP.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 1}
	})
	assert.Equal(t, http.StatusOK, get(s, "/chart/season.svg").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(s, "/chart/season.svg").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(s, "/").Code)
	// Health checks are not limited.
	assert.Equal(t, http.StatusOK, get(s, "/healthz").Code)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RateLimited))

	// Other clients have their own budget.
	req := httptest.NewRequest(http.MethodGet, "/chart/season.svg", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := get(s, "/healthz")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, "abc123", rec.Header().Get("X-Request-ID"))
}

func TestUnmatchedRoute(t *testing.T) {
	s, m := newTestServer(t, nil)
	assert.Equal(t, http.StatusNotFound, get(s, "/nope").Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("unmatched", "404")))
}

func TestRun(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx, ln) }()

	// run loads the dataset in the background.
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/readyz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
