// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bikedash serves a dashboard of bike-sharing usage charts
// over the hourly rental dataset.
//
// By default, bikedash serves the dashboard over HTTP. The page has a
// date range in its sidebar; changing it re-runs every chart over the
// selected dates. With -o, bikedash instead writes a static report
// for the -start and -end dates and exits. A report file ending in
// .xlsx is an Excel workbook of the numbers behind each chart.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aclements/bikedash/bikeshare"
	"github.com/aclements/bikedash/internal/config"
	"github.com/aclements/bikedash/internal/logging"
	"github.com/aclements/bikedash/internal/metrics"
	"github.com/rs/zerolog"
)

var (
	configFlag = flag.String("config", "", "read configuration from `file`")
	dataFlag   = flag.String("data", "hour.csv", "read the dataset from `file`")
	httpFlag   = flag.String("http", "localhost:8080", "HTTP service `address` (e.g., ':6060')")
	outFlag    = flag.String("o", "", "write a static report to `file` and exit")
	startFlag  = flag.String("start", "", "first `date` to include (YYYY-MM-DD; default dataset start)")
	endFlag    = flag.String("end", "", "last `date` to include (YYYY-MM-DD; default dataset end)")
	openFlag   = flag.Bool("open", false, "open the dashboard in a browser")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}
	log.SetPrefix("bikedash: ")
	log.SetFlags(0)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal(err)
	}
	// Flags given explicitly override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Data.Path = *dataFlag
		case "http":
			cfg.HTTP.Addr = *httpFlag
		}
	})

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}

	loader := new(bikeshare.Loader)
	if *outFlag != "" {
		err = writeReport(context.Background(), cfg, loader, *outFlag, *startFlag, *endFlag)
	} else {
		err = serve(cfg, loader, logger)
	}
	if err != nil {
		logger.Error().Err(err).Msg("bikedash failed")
	}
	if closer != nil {
		closer.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func serve(cfg *config.Config, loader *bikeshare.Loader, logger zerolog.Logger) error {
	// Check the dates before starting anything.
	q := url.Values{}
	for _, f := range []struct{ name, value string }{{"start", *startFlag}, {"end", *endFlag}} {
		if f.value == "" {
			continue
		}
		if _, err := parseDate(f.value, time.Time{}); err != nil {
			return fmt.Errorf("-%s: %w", f.name, err)
		}
		q.Set(f.name, f.value)
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to create server socket: %w", err)
	}
	addr := "http://" + ln.Addr().String()
	fmt.Printf("Listening on %s\n", addr)

	if *openFlag {
		u := addr + "/"
		if len(q) > 0 {
			u += "?" + q.Encode()
		}
		if err := openBrowser(cfg.Browser, u); err != nil {
			logger.Warn().Err(err).Msg("opening browser")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newServer(cfg, loader, logger, metrics.NewMetrics()).run(ctx, ln)
}
