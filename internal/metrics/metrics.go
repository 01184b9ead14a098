// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics defines the Prometheus collectors exported by the
// dashboard server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bikedash"

// Metrics holds the dashboard's Prometheus collectors.
type Metrics struct {
	Requests       *prometheus.CounterVec   // labels: route, code
	RenderDuration *prometheus.HistogramVec // labels: chart
	RateLimited    prometheus.Counter

	// Row counts of the loaded dataset and of the most recent
	// filtered view.
	DatasetRows  prometheus.Gauge
	FilteredRows prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Requests,
		m.RenderDuration,
		m.RateLimited,
		m.DatasetRows,
		m.FilteredRows,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors, so tests can
// create as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time to aggregate and render one chart.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"chart"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the loaded dataset.",
		}),
		FilteredRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "filtered_rows",
			Help:      "Rows in the most recently requested date range.",
		}),
	}
}
