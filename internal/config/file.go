package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedConfigFile is returned for config files whose extension is
// neither .json nor .yaml/.yml.
var ErrUnsupportedConfigFile = errors.New("unsupported config file extension")

// fileConfig is the on-disk layout of the config file. Durations are
// written as Go duration strings ("5s", "1m30s").
type fileConfig struct {
	App struct {
		TerminalPasswordHash string `json:"terminal_password_hash" yaml:"terminal_password_hash"`
		Version              string `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			Driver string `json:"driver" yaml:"driver"`
			DSN    string `json:"database_uri" yaml:"database_uri"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string `json:"address" yaml:"address"`
		RequestTimeout string `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		HTTPAddress    string `json:"address" yaml:"address"`
		RequestTimeout string `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		ReadinessInterval string `json:"readiness_interval" yaml:"readiness_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads the config file at path. The decoder is picked by
// extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %q: %w", path, err)
	}

	return raw.toStructured()
}

func (f *fileConfig) toStructured() (*StructuredConfig, error) {
	cfg := &StructuredConfig{
		App: App{
			TerminalPasswordHash: f.App.TerminalPasswordHash,
			Version:              f.App.Version,
		},
		Storage: Storage{DB: DB{
			Driver: f.Storage.DB.Driver,
			DSN:    f.Storage.DB.DSN,
		}},
		Server:  Server{HTTPAddress: f.Server.HTTPAddress},
		Adapter: Adapter{HTTPAddress: f.Adapter.HTTPAddress},
	}

	var err error
	if cfg.Server.RequestTimeout, err = parseDuration("server.request_timeout", f.Server.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.Adapter.RequestTimeout, err = parseDuration("adapter.request_timeout", f.Adapter.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.Workers.ReadinessInterval, err = parseDuration("workers.readiness_interval", f.Workers.ReadinessInterval); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
