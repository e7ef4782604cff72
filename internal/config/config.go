// Package config loads the player configuration from a YAML file with sane
// defaults, so the list geometry and sync behavior are tunable without
// rebuilding.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Cache
	CachePath string `yaml:"cache_path"`

	// List geometry
	ItemHeightPx     int `yaml:"item_height_px"`
	ViewportHeightPx int `yaml:"viewport_height_px"`
	Overscan         int `yaml:"overscan"`

	// Sync behavior
	OffsetMs         int64 `yaml:"offset_ms"`
	AutoScroll       bool  `yaml:"auto_scroll"`
	ScrollDurationMs int   `yaml:"scroll_duration_ms"`
	RespectEndTimes  bool  `yaml:"respect_end_times"`

	// Audio
	SampleRate int    `yaml:"sample_rate"`
	TempDir    string `yaml:"temp_dir"`
}

func Default() *Config {
	return &Config{
		CachePath:        "lyriccache.sqlite3",
		ItemHeightPx:     56,
		ViewportHeightPx: 560,
		Overscan:         5,
		OffsetMs:         0,
		AutoScroll:       true,
		ScrollDurationMs: 280,
		RespectEndTimes:  false,
		SampleRate:       22050,
		TempDir:          os.TempDir(),
	}
}

// Load reads path on top of the defaults. A missing file is not an error;
// the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects geometry a virtualized list cannot work with.
func (c *Config) Validate() error {
	if c.ItemHeightPx <= 0 {
		return fmt.Errorf("item_height_px must be positive, got %d", c.ItemHeightPx)
	}
	if c.ViewportHeightPx <= 0 {
		return fmt.Errorf("viewport_height_px must be positive, got %d", c.ViewportHeightPx)
	}
	if c.Overscan < 0 {
		return fmt.Errorf("overscan must not be negative, got %d", c.Overscan)
	}
	if c.ScrollDurationMs <= 0 {
		return fmt.Errorf("scroll_duration_ms must be positive, got %d", c.ScrollDurationMs)
	}
	return nil
}

// Save writes the config back to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
