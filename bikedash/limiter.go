// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"net"
	"net/http"
	"sync"

	"github.com/aclements/bikedash/internal/config"
	"golang.org/x/time/rate"
)

// rateLimiter limits chart rendering per client address.
type rateLimiter struct {
	cfg      config.RateLimitConfig
	limiters sync.Map // client key -> *rate.Limiter
}

// newRateLimiter returns a limiter for cfg, or nil if cfg disables
// limiting.
func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	if cfg.RPS <= 0 {
		return nil
	}
	return &rateLimiter{cfg: cfg}
}

// allow reports whether a request from key may proceed. A nil
// rateLimiter allows everything.
func (l *rateLimiter) allow(key string) bool {
	if l == nil {
		return true
	}
	return l.getLimiter(key).Allow()
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// clientKey identifies the client of r for rate limiting.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
