// internal/config/config.go
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	PNCP struct {
		BaseURL        string  `yaml:"base_url"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		PageDelayMs    int     `yaml:"page_delay_ms"`
		RunDelayMs     int     `yaml:"run_delay_ms"`
		MaxPages       int     `yaml:"max_pages"`
		MaxItems       int     `yaml:"max_items"`
		PageSize       int     `yaml:"page_size"`
		RatePerSec     float64 `yaml:"rate_per_sec"`
		RateBurst      int     `yaml:"rate_burst"`
	} `yaml:"pncp"`

	Search struct {
		RangeDays  int      `yaml:"range_days"`
		Modalities []string `yaml:"modalities"`
		Keywords   []string `yaml:"keywords"`
	} `yaml:"search"`

	Snapshot struct {
		Enabled         bool   `yaml:"enabled"`
		OutPath         string `yaml:"out_path"`
		RefreshMinutes  int    `yaml:"refresh_minutes"`
		PageSize        int    `yaml:"page_size"`
		MaxPagesPerCell int    `yaml:"max_pages_per_cell"`
		MaxTotal        int    `yaml:"max_total"`
		Workers         int    `yaml:"workers"`
	} `yaml:"snapshot"`

	Panel struct {
		Username string `yaml:"username"`
	} `yaml:"panel"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Duration accessors with the safety defaults the panel shipped with.

func (c Config) Timeout() time.Duration {
	if c.PNCP.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.PNCP.TimeoutSeconds) * time.Second
}

func (c Config) PageDelay() time.Duration {
	if c.PNCP.PageDelayMs <= 0 {
		return 120 * time.Millisecond
	}
	return time.Duration(c.PNCP.PageDelayMs) * time.Millisecond
}

func (c Config) RunDelay() time.Duration {
	if c.PNCP.RunDelayMs <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.PNCP.RunDelayMs) * time.Millisecond
}

func (c Config) ModalityCodes() []string {
	if len(c.Search.Modalities) == 0 {
		return []string{"6", "8", "2", "3", "7"}
	}
	return c.Search.Modalities
}
