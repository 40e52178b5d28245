// Package config loads the player configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport selections.
const (
	TransportAuto   = "auto"   // ffplay when audio is present, clock otherwise
	TransportClock  = "clock"  // silent wall-clock playback
	TransportFFPlay = "ffplay" // always spawn ffplay
)

// DefaultTickMs is the default time-sample interval. The sample handler is
// a hot path, so the interval is bounded by Validate.
const DefaultTickMs = 100

// Config holds the player settings.
type Config struct {
	TickMs    int    `yaml:"tick_ms"`
	Autoplay  bool   `yaml:"autoplay"`
	Transport string `yaml:"transport"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickMs:    DefaultTickMs,
		Transport: TransportAuto,
	}
}

// TickInterval returns the sample interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.TickMs < 16 || c.TickMs > 1000 {
		return fmt.Errorf("config: tick_ms %d out of range [16, 1000]", c.TickMs)
	}
	switch c.Transport {
	case TransportAuto, TransportClock, TransportFFPlay:
	default:
		return fmt.Errorf("config: unknown transport %q", c.Transport)
	}
	return nil
}

// Loader loads configuration from a YAML file. Tests can override ReadFile
// to inject deterministic content.
type Loader struct {
	ReadFile func(string) ([]byte, error)
}

// Load reads and validates the configuration at path. An empty path or a
// missing file yields the defaults.
func (l Loader) Load(path string) (Config, error) {
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := l.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
