// Package config reads client configuration. Precedence, lowest to
// highest: built-in defaults, the optional YAML file under the state
// directory, then environment variables. Command-line flags are applied
// on top by the CLI layer.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable the client honors.
type Config struct {
	// APIBaseURL is the address of the external AyosNow backend.
	APIBaseURL string `env:"AYOSNOW_API" yaml:"api_base_url"`
	// HTTPTimeout bounds each backend request end to end.
	HTTPTimeout time.Duration `env:"AYOSNOW_HTTP_TIMEOUT" yaml:"http_timeout"`
	// FetchDelay is the simulated dashboard fetch latency.
	FetchDelay time.Duration `env:"AYOSNOW_FETCH_DELAY" yaml:"fetch_delay"`
	// ToastTTL is how long a toast stays visible unless superseded.
	ToastTTL time.Duration `env:"AYOSNOW_TOAST_TTL" yaml:"toast_ttl"`
	// DarkMode forces the dark theme regardless of terminal detection.
	DarkMode bool `env:"AYOSNOW_DARK_MODE" yaml:"dark_mode"`
	// StateDir is where logs and the config file live.
	StateDir string `env:"AYOSNOW_STATE_DIR" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBaseURL:  "http://localhost:8080",
		HTTPTimeout: 10 * time.Second,
		FetchDelay:  1500 * time.Millisecond,
		ToastTTL:    4 * time.Second,
		StateDir:    defaultStateDir(),
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// if present, then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	// The state dir may be overridden by env before we know where to look
	// for the config file.
	if dir := os.Getenv("AYOSNOW_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}

	if err := cfg.loadFile(filepath.Join(cfg.StateDir, "config.yaml")); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api base url must not be empty")
	}
	return cfg, nil
}

// loadFile merges the YAML file at path into cfg. A missing file is fine.
func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LogPath returns the log file location under the state directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "logs", "client.log")
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ayosnow"
	}
	return filepath.Join(home, ".ayosnow")
}
