// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging constructs the zerolog logger used by bikedash.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aclements/bikedash/internal/config"
	"github.com/rs/zerolog"
)

// New constructs a logger from cfg. If cfg directs output to a file,
// the returned Closer closes it; otherwise it is nil.
//
// An unrecognized level falls back to info.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	var out io.Writer
	var closer io.Closer
	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "file":
		if cfg.FilePath == "" {
			return zerolog.Nop(), nil, fmt.Errorf("logging.output=file requires logging.file_path")
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	default:
		return zerolog.Nop(), nil, fmt.Errorf("unknown logging output %q", cfg.Output)
	}

	return newLogger(out, cfg.Format, level), closer, nil
}

func newLogger(out io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if strings.ToLower(strings.TrimSpace(format)) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", "bikedash").
		Logger()
}
