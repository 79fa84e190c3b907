// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is the task service base URL used when no config
// file overrides it.
const DefaultServerURL = "http://localhost:5000/api/v1"

// DefaultTimeout bounds one-shot CLI requests. The dashboard TUI uses
// its own per-call contexts instead.
const DefaultTimeout = 15 * time.Second

// Config is the taskdeck client configuration.
type Config struct {
	// Server configures how to reach the task service.
	Server ServerConfig `yaml:"server"`

	// SessionFile overrides the session file location. Empty uses
	// the well-known path (see lib/session.FilePath).
	SessionFile string `yaml:"session_file"`

	// ThemeFile is an optional JSONC file overriding dashboard
	// colors. Empty uses the built-in theme.
	ThemeFile string `yaml:"theme_file"`
}

// ServerConfig configures the task service connection.
type ServerConfig struct {
	// URL is the service base URL including the API prefix
	// (e.g. "https://tasks.example.com/api/v1").
	URL string `yaml:"url"`

	// Timeout bounds each request. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration: local development server,
// well-known session path, built-in theme.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     DefaultServerURL,
			Timeout: DefaultTimeout,
		},
	}
}

// Load loads configuration from the TASKDECK_CONFIG environment
// variable when set, otherwise returns Default. Unlike server-side
// components, the client is expected to work out of the box with no
// config file at all; the file exists for pointing at a different
// deployment, not for required setup.
func Load() (*Config, error) {
	configPath := os.Getenv("TASKDECK_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults. The config file is the single source of truth —
// environment variables do not override individual values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("config file %s: server.url must not be empty", path)
	}
	if cfg.Server.Timeout < 0 {
		return nil, fmt.Errorf("config file %s: server.timeout must not be negative", path)
	}

	return cfg, nil
}
