// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsForTesting(t *testing.T) {
	// Creating twice must not panic.
	NewMetricsForTesting()
	m := NewMetricsForTesting()

	m.Requests.WithLabelValues("/", "200").Inc()
	m.Requests.WithLabelValues("/", "200").Inc()
	m.Requests.WithLabelValues("/chart", "404").Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("/", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Requests))

	m.DatasetRows.Set(17379)
	assert.Equal(t, 17379.0, testutil.ToFloat64(m.DatasetRows))
}

func TestMetricNames(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewMetricsForTesting()
	require.NoError(t, reg.Register(m.Requests))
	require.NoError(t, reg.Register(m.RenderDuration))
	require.NoError(t, reg.Register(m.RateLimited))
	require.NoError(t, reg.Register(m.DatasetRows))
	require.NoError(t, reg.Register(m.FilteredRows))

	m.Requests.WithLabelValues("/", "200").Inc()
	m.RenderDuration.WithLabelValues("heatmap").Observe(0.01)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"bikedash_http_requests_total",
		"bikedash_render_duration_seconds",
		"bikedash_rate_limited_total",
		"bikedash_dataset_rows",
		"bikedash_filtered_rows",
	}, names)
}
