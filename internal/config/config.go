// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
//   - envDefault: value used when the variable is unset.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local settings database configuration.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address of the development backend.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the backend address the client talks to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background tasks.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a .json, .yaml or .yml
	// configuration file merged on top of env and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`

	// Args are the positional arguments left after flag parsing
	// (the client subcommand).
	Args []string
}

// Storage groups the configuration for the local stores.
type Storage struct {
	// DB holds the settings database settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// TerminalPasswordHash is an optional bcrypt hash the terminal
	// passphrase must match. Empty means any non-empty passphrase opens
	// the terminal gate.
	// Env: APP_TERMINAL_PASSWORD_HASH
	TerminalPasswordHash string `env:"TERMINAL_PASSWORD_HASH"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the development backend.
type Server struct {
	// HTTPAddress is the TCP address the devserver listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the local settings database.
type DB struct {
	// Driver selects the backend: "sqlite" (default) or "bbolt".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the database file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds configuration of the outbound backend client.
type Adapter struct {
	// HTTPAddress is the backend address in "host:port" or URL form.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the per-request timeout of the HTTP client.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background tasks.
type Workers struct {
	// ReadinessInterval is the fixed delay between readiness probes.
	// Env: WORKERS_READINESS_INTERVAL
	ReadinessInterval time.Duration `env:"READINESS_INTERVAL"`
}

// Defaults applied to zero fields after all sources are merged.
const (
	DefaultAdapterAddress    = "127.0.0.1:8000"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultStorageDriver     = "sqlite"
	DefaultStorageDSN        = "mylife-client.db"
	DefaultReadinessInterval = time.Second
	DefaultServerAddress     = "127.0.0.1:8000"
	DefaultServerReqTimeout  = 30 * time.Second
)

// GetStructuredConfig loads and merges the configuration from all sources
// in the following priority order (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. Config file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withFile().
		build()
}
