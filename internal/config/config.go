// Package config loads the server/CLI configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "500ms" or "720h"
// parse directly.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the top-level configuration.
type Config struct {
	// Listen is the HTTP listen address for `intake serve`.
	Listen string `yaml:"listen"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Debounce overrides the draft persistence quiet window.
	Debounce Duration `yaml:"debounce"`

	Storage Storage `yaml:"storage"`
}

// Recognized storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Storage selects and configures the draft store backend.
type Storage struct {
	// Backend is one of "file", "memory", "redis".
	Backend string `yaml:"backend"`

	// Dir is the draft directory for the file backend.
	Dir string `yaml:"dir"`

	Redis Redis `yaml:"redis"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:   ":8484",
		LogLevel: "info",
		Storage: Storage{
			Backend: BackendFile,
		},
	}
}

// Load reads and parses a YAML config file, applying defaults for absent
// keys.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Storage.Backend {
	case "", BackendFile, BackendMemory, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}

	return cfg, nil
}
