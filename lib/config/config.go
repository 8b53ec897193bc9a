// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the EventHub
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - the EVENTHUB_CONFIG environment variable, or
//   - the --config flag passed to the command
//
// There are no fallbacks or automatic discovery; a missing path means
// defaults. This keeps configuration deterministic with no hidden
// overrides.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// Server is the base URL of the EventHub REST API, including the
	// path prefix (e.g. "http://localhost:8080/api").
	Server string `yaml:"server"`

	// SessionFile overrides the default session file location.
	SessionFile string `yaml:"session_file,omitempty"`

	// EventsPageSize is the page size for event listings.
	EventsPageSize int `yaml:"events_page_size,omitempty"`

	// TicketsPageSize is the page size for the my-tickets view.
	TicketsPageSize int `yaml:"tickets_page_size,omitempty"`

	// StaleAfter is the cache staleness window: a repeated read inside
	// this window is served from cache with no network call.
	StaleAfter time.Duration `yaml:"stale_after,omitempty"`
}

// Default returns the built-in configuration. The page sizes match the
// server's listing defaults.
func Default() Config {
	return Config{
		Server:          "http://localhost:8080/api",
		EventsPageSize:  12,
		TicketsPageSize: 10,
		StaleAfter:      30 * time.Second,
	}
}

// Load reads configuration from the given path, or from the
// EVENTHUB_CONFIG environment variable when path is empty. An empty
// resolved path returns Default(). Unknown fields in the file are an
// error: typos should fail loudly, not silently fall back.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv("EVENTHUB_CONFIG")
	}
	configuration := Default()
	if path == "" {
		return configuration, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&configuration); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := configuration.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return configuration, nil
}

// validate rejects values the rest of the client cannot work with.
func (configuration Config) validate() error {
	if configuration.Server == "" {
		return fmt.Errorf("server must not be empty")
	}
	if configuration.EventsPageSize <= 0 {
		return fmt.Errorf("events_page_size must be positive, got %d", configuration.EventsPageSize)
	}
	if configuration.TicketsPageSize <= 0 {
		return fmt.Errorf("tickets_page_size must be positive, got %d", configuration.TicketsPageSize)
	}
	if configuration.StaleAfter < 0 {
		return fmt.Errorf("stale_after must not be negative, got %s", configuration.StaleAfter)
	}
	return nil
}
