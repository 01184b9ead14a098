// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads bikedash configuration from a YAML file, with
// ${VAR} references expanded from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Data    DataConfig    `yaml:"data"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
	Charts  ChartsConfig  `yaml:"charts"`

	// Browser is the command used to open the dashboard. It is
	// split into words like a shell would. If empty, $BROWSER or a
	// platform default is used.
	Browser string `yaml:"browser"`
}

type DataConfig struct {
	Path string `yaml:"path"`
}

type HTTPConfig struct {
	Addr            string          `yaml:"addr"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig limits chart rendering requests per client. An RPS
// of 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type ChartsConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// EnvFile is the dotenv file loaded, if it exists, before the
// configuration file is read.
var EnvFile = ".env"

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := new(Config)
	c.applyDefaults()
	return c
}

// Load reads the configuration file at path. If path is "", Load
// returns the default configuration, after loading EnvFile.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", EnvFile, err)
	}

	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Data.Path == "" {
		c.Data.Path = "hour.csv"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = "localhost:8080"
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.HTTP.RateLimit.RPS > 0 && c.HTTP.RateLimit.Burst == 0 {
		c.HTTP.RateLimit.Burst = int(c.HTTP.RateLimit.RPS) + 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	if c.Charts.Width == 0 {
		c.Charts.Width = 800
	}
	if c.Charts.Height == 0 {
		c.Charts.Height = 480
	}
}

// Validate reports every problem with c.
func (c *Config) Validate() error {
	var err *multierror.Error
	if c.Data.Path == "" {
		err = multierror.Append(err, errors.New("data.path is required"))
	}
	if c.HTTP.Addr == "" {
		err = multierror.Append(err, errors.New("http.addr is required"))
	}
	if c.HTTP.ShutdownTimeout < 0 {
		err = multierror.Append(err, fmt.Errorf("http.shutdown_timeout %v is negative", c.HTTP.ShutdownTimeout))
	}
	if c.HTTP.RateLimit.RPS < 0 {
		err = multierror.Append(err, fmt.Errorf("http.rate_limit.rps %v is negative", c.HTTP.RateLimit.RPS))
	}
	if c.HTTP.RateLimit.Burst < 0 {
		err = multierror.Append(err, fmt.Errorf("http.rate_limit.burst %d is negative", c.HTTP.RateLimit.Burst))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		err = multierror.Append(err, fmt.Errorf("logging.format %q must be console or json", c.Logging.Format))
	}
	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "stderr":
	case "file":
		if c.Logging.FilePath == "" {
			err = multierror.Append(err, errors.New("logging.output=file requires logging.file_path"))
		}
	default:
		err = multierror.Append(err, fmt.Errorf("logging.output %q must be stdout, stderr or file", c.Logging.Output))
	}
	if c.Charts.Width < 200 || c.Charts.Height < 150 {
		err = multierror.Append(err, fmt.Errorf("charts size %dx%d is smaller than 200x150", c.Charts.Width, c.Charts.Height))
	}
	return err.ErrorOrNil()
}
