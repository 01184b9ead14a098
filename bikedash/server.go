// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/bikedash/bikeshare"
	"github.com/aclements/bikedash/internal/chart"
	"github.com/aclements/bikedash/internal/config"
	"github.com/aclements/bikedash/internal/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// server serves the dashboard over HTTP. Every request re-runs the
// aggregations for its date range over the cached dataset.
type server struct {
	cfg     *config.Config
	loader  *bikeshare.Loader
	log     zerolog.Logger
	metrics *metrics.Metrics
	limiter *rateLimiter
	opts    chart.Options

	handler http.Handler
}

func newServer(cfg *config.Config, loader *bikeshare.Loader, log zerolog.Logger, m *metrics.Metrics) *server {
	s := &server{
		cfg:     cfg,
		loader:  loader,
		log:     log,
		metrics: m,
		limiter: newRateLimiter(cfg.HTTP.RateLimit),
		opts:    chart.Options{Width: cfg.Charts.Width, Height: cfg.Charts.Height},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.limit(s.handlePage))
	mux.HandleFunc("GET /chart/{file}", s.limit(s.handleChart))
	mux.HandleFunc("GET /export.xlsx", s.limit(s.handleExport))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	s.handler = s.logRequests(mux)
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// run serves on ln until ctx is done, then shuts down gracefully. It
// starts loading the dataset in the background so /readyz reports
// when it is available.
func (s *server) run(ctx context.Context, ln net.Listener) error {
	go func() {
		d, err := s.loader.Load(ctx, s.cfg.Data.Path)
		if err != nil {
			s.log.Error().Err(err).Str("path", s.cfg.Data.Path).Msg("loading dataset")
			return
		}
		s.metrics.DatasetRows.Set(float64(d.Len()))
		s.log.Info().Int("rows", d.Len()).Str("path", s.cfg.Data.Path).Msg("dataset loaded")
	}()

	hs := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// badRequest wraps errors caused by the request itself.
type badRequest struct{ error }

func (e badRequest) Unwrap() error { return e.error }

// parseDate parses a YYYY-MM-DD date, returning def if value is empty.
func parseDate(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	t, err := time.Parse(bikeshare.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return t, nil
}

// view loads the dataset and restricts it to the request's start and
// end query parameters, which default to the dataset's date range.
func (s *server) view(r *http.Request) (view, error) {
	full, err := s.loader.Load(r.Context(), s.cfg.Data.Path)
	if err != nil {
		return view{}, err
	}
	s.metrics.DatasetRows.Set(float64(full.Len()))

	start, end := full.DateRange()
	if start, err = parseDate(r.FormValue("start"), start); err != nil {
		return view{}, badRequest{fmt.Errorf("start: %w", err)}
	}
	if end, err = parseDate(r.FormValue("end"), end); err != nil {
		return view{}, badRequest{fmt.Errorf("end: %w", err)}
	}
	v := newView(full, start, end)
	s.metrics.FilteredRows.Set(float64(v.d.Len()))
	return v, nil
}

// fail reports err to the client and logs it.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var bad badRequest
	if errors.As(err, &bad) {
		http.Error(w, bad.Error(), http.StatusBadRequest)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// render renders one section of v and records how long it took.
func (s *server) render(w io.Writer, sec *section, v view) error {
	start := time.Now()
	err := renderSection(w, sec, v, s.opts)
	s.metrics.RenderDuration.WithLabelValues(sec.Name).Observe(time.Since(start).Seconds())
	return err
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := renderPage(&buf, v, false, s.render); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".svg")
	sec := findSection(name)
	if !ok || sec == nil {
		http.NotFound(w, r)
		return
	}
	v, err := s.view(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := s.render(&buf, sec, v); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := writeWorkbook(&buf, v.d); err != nil {
		s.fail(w, r, err)
		return
	}
	name := fmt.Sprintf("bikedash-%s-%s.xlsx", v.start.Format(bikeshare.DateLayout), v.end.Format(bikeshare.DateLayout))
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(buf.Bytes())
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.loader.Loaded(s.cfg.Data.Path) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "dataset " + s.cfg.Data.Path + " is not loaded",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// limit rejects requests from clients over their rate limit.
func (s *server) limit(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientKey(r)) {
			s.metrics.RateLimited.Inc()
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		h(w, r)
	}
}

// logRequests assigns each request an ID, logs it, and counts it by
// route and status.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		log := s.log.With().Str("request_id", id).Logger()
		r = r.WithContext(log.WithContext(r.Context()))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// The mux records the matched pattern in r.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
