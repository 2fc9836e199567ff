package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

// Config holds all Brightpath configuration.
type Config struct {
	Listen  string        `yaml:"listen"`
	DBPath  string        `yaml:"db_path"`
	Backend BackendConfig `yaml:"backend"`
	Cost    CostConfig    `yaml:"cost"`
	Rate    RateConfig    `yaml:"rate"`
	Cache   CacheConfig   `yaml:"cache"`
	Graph   GraphConfig   `yaml:"graph"`
	Session SessionConfig `yaml:"session"`
}

// BackendConfig defines the upstream LLM backend.
type BackendConfig struct {
	URL         string        `yaml:"url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
}

// CostConfig controls spending limits and the model price table.
type CostConfig struct {
	SessionLimitUSD  float64                      `yaml:"session_limit_usd"`
	LifetimeLimitUSD float64                      `yaml:"lifetime_limit_usd"`
	Prices           map[string]models.ModelPrice `yaml:"prices"`
}

// RateConfig controls the fixed-window rate limiter for paid calls.
type RateConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	Window            time.Duration `yaml:"window"`
}

// CacheConfig controls the two-tier intervention cache.
type CacheConfig struct {
	MemoryCapacity int `yaml:"memory_capacity"`
	TTLDays        int `yaml:"ttl_days"`
}

// GraphConfig controls the knowledge graph adapter. When disabled, a
// no-op adapter returning empty defaults is used instead.
type GraphConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// SessionConfig controls learner session lifecycle.
type SessionConfig struct {
	GapTimeout time.Duration `yaml:"gap_timeout"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		DBPath: "brightpath.db",
		Backend: BackendConfig{
			Model:       "gpt-4-turbo-preview",
			MaxTokens:   200,
			Temperature: 0.7,
			Timeout:     10 * time.Second,
			MaxRetries:  3,
		},
		Cost: CostConfig{
			SessionLimitUSD:  5.00,
			LifetimeLimitUSD: 50.00,
		},
		Rate: RateConfig{
			RequestsPerMinute: 60,
			Window:            time.Minute,
		},
		Cache: CacheConfig{
			MemoryCapacity: 10000,
			TTLDays:        30,
		},
		Session: SessionConfig{
			GapTimeout: 30 * time.Minute,
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
