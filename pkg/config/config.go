package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Provider struct {
		BaseURL      string        `yaml:"base_url"`
		Pages        int           `yaml:"pages"`
		Timeout      time.Duration `yaml:"timeout"`
		RetryMax     int           `yaml:"retry_max"`
		RetryBackoff time.Duration `yaml:"retry_backoff"`
		UserAgent    string        `yaml:"user_agent"`
	} `yaml:"provider"`
	Analysis struct {
		Preset  string `yaml:"preset"`
		MinBars int    `yaml:"min_bars"`
	} `yaml:"analysis"`
	Cache struct {
		Backend string        `yaml:"backend"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("ANALYSIS_PRESET"); v != "" {
		c.Analysis.Preset = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.Pages <= 0 {
		return fmt.Errorf("provider.pages must be positive, got %d", c.Provider.Pages)
	}
	if c.Analysis.Preset == "" {
		return fmt.Errorf("analysis.preset is required")
	}
	if c.Analysis.MinBars < 20 {
		return fmt.Errorf("analysis.min_bars must be at least 20, got %d", c.Analysis.MinBars)
	}
	if c.Cache.Backend != "" && c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when cache.backend is 'redis'")
	}
	return nil
}
