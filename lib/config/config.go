// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for ttystuff.
//
// Configuration is loaded from a single file specified by:
//   - TTYSTUFF_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. The config file is
// optional: when neither the environment variable nor the flag is set,
// the defaults apply. Command-line flags override config values.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable injection defaults.
type Config struct {
	// Delay is the pause between injected characters, as a Go
	// duration string. Spaces the ioctl calls so the terminal
	// driver's input queue is never flooded.
	// Default: 1ms
	Delay string `yaml:"delay"`

	// Enter selects the line terminator encoding: cr, lf, crlf,
	// none, or auto.
	// Default: cr
	Enter string `yaml:"enter"`

	// Timeout bounds a whole injection, as a Go duration string.
	// "0" disables the bound.
	// Default: 0
	Timeout string `yaml:"timeout"`
}

// Default returns the default configuration. These defaults apply when
// no config file is present, and as a base before loading one.
func Default() *Config {
	return &Config{
		Delay:   "1ms",
		Enter:   "cr",
		Timeout: "0",
	}
}

// Load loads configuration from the TTYSTUFF_CONFIG environment
// variable. If the variable is not set, the defaults are returned.
func Load() (*Config, error) {
	configPath := os.Getenv("TTYSTUFF_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults. Environment variables do not override config values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors. Enter values are
// validated where they are parsed (inject.ParseEnter); Validate covers
// the duration fields.
func (c *Config) Validate() error {
	var errs []error

	if _, err := time.ParseDuration(c.Delay); err != nil {
		errs = append(errs, fmt.Errorf("invalid delay %q: %w", c.Delay, err))
	}
	if c.Timeout != "0" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err))
		}
	}
	if c.Enter == "" {
		errs = append(errs, errors.New("enter is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DelayDuration returns the parsed Delay. Call Validate first; an
// unparseable value returns the default.
func (c *Config) DelayDuration() time.Duration {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return time.Millisecond
	}
	return d
}

// TimeoutDuration returns the parsed Timeout, or zero when disabled.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" || c.Timeout == "0" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}
