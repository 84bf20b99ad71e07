// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
		"app": {"terminal_password_hash": "$2a$10$x", "version": "0.3.0"},
		"storage": {"db": {"driver": "bbolt", "database_uri": "/tmp/s.bolt"}},
		"server": {"address": "0.0.0.0:8000", "request_timeout": "10s"},
		"adapter": {"address": "localhost:8000", "request_timeout": "3s"},
		"workers": {"readiness_interval": "250ms"}
	}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "$2a$10$x", cfg.App.TerminalPasswordHash)
	assert.Equal(t, "0.3.0", cfg.App.Version)
	assert.Equal(t, "bbolt", cfg.Storage.DB.Driver)
	assert.Equal(t, "/tmp/s.bolt", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "localhost:8000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Workers.ReadinessInterval)
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
adapter:
  address: 10.1.1.1:8000
  request_timeout: 1m
workers:
  readiness_interval: 2s
`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "10.1.1.1:8000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Workers.ReadinessInterval)
	assert.Empty(t, cfg.Storage.DB.Driver)
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{name: "unsupported extension", file: "config.toml", content: "x = 1", target: ErrUnsupportedConfigFile},
		{name: "malformed json", file: "config.json", content: "{not json"},
		{name: "malformed yaml", file: "config.yml", content: "adapter: [unterminated"},
		{name: "bad duration", file: "config.json", content: `{"workers":{"readiness_interval":"often"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.file, tt.content)

			cfg, err := parseFile(path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}
