// Package config reads runtime configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backend names accepted by STORE_BACKEND.
const (
	BackendSQLite         = "sqlite"
	BackendRemote         = "remote"
	BackendRemoteFallback = "remote-fallback"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppName         string        `envconfig:"APP_NAME" default:"Boutik"`
	AppAddr         string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`

	// StoreBackend selects the persistence layer: sqlite, remote, or
	// remote-fallback (remote mirror with the sqlite copy authoritative).
	StoreBackend  string        `envconfig:"STORE_BACKEND" default:"sqlite"`
	DBPath        string        `envconfig:"DB_PATH" default:"./data/boutik.db"`
	RemoteURL     string        `envconfig:"REMOTE_URL"`
	RemoteTimeout time.Duration `envconfig:"REMOTE_TIMEOUT" default:"10s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	switch cfg.StoreBackend {
	case BackendSQLite:
	case BackendRemote, BackendRemoteFallback:
		if cfg.RemoteURL == "" {
			return nil, fmt.Errorf("REMOTE_URL must be set when STORE_BACKEND is %q", cfg.StoreBackend)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return &cfg, nil
}
