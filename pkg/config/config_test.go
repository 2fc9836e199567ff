package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Listen != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Listen)
	}
	if cfg.Backend.Model != "gpt-4-turbo-preview" {
		t.Errorf("unexpected default model: %s", cfg.Backend.Model)
	}
	if cfg.Backend.MaxRetries != 3 {
		t.Errorf("expected 3 retries, got %d", cfg.Backend.MaxRetries)
	}
	if cfg.Cost.SessionLimitUSD != 5.00 {
		t.Errorf("expected $5 session limit, got %f", cfg.Cost.SessionLimitUSD)
	}
	if cfg.Cache.TTLDays != 30 {
		t.Errorf("expected 30 day TTL, got %d", cfg.Cache.TTLDays)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sk-test-123")

	content := `
listen: ":9090"
db_path: "test.db"
backend:
  url: https://api.openai.com/v1
  api_key: ${TEST_API_KEY}
  model: gpt-4
  timeout: 5s
cost:
  session_limit_usd: 2.50
  prices:
    gpt-4:
      input_per_1k: 0.03
      output_per_1k: 0.06
rate:
  requests_per_minute: 30
cache:
  memory_capacity: 100
  ttl_days: 7
graph:
  enabled: true
  db_path: "graph.db"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Listen != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Listen)
	}
	if cfg.Backend.APIKey != "sk-test-123" {
		t.Errorf("env var not expanded: got %s", cfg.Backend.APIKey)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Backend.Timeout)
	}
	if cfg.Cost.SessionLimitUSD != 2.50 {
		t.Errorf("expected $2.50 session limit, got %f", cfg.Cost.SessionLimitUSD)
	}
	if p, ok := cfg.Cost.Prices["gpt-4"]; !ok || p.InputPer1K != 0.03 {
		t.Errorf("price table not loaded: %+v", cfg.Cost.Prices)
	}
	if cfg.Rate.RequestsPerMinute != 30 {
		t.Errorf("expected 30 rpm, got %d", cfg.Rate.RequestsPerMinute)
	}
	if cfg.Cache.MemoryCapacity != 100 {
		t.Errorf("expected capacity 100, got %d", cfg.Cache.MemoryCapacity)
	}
	if !cfg.Graph.Enabled {
		t.Error("expected graph enabled")
	}

	// Defaults survive partial configs.
	if cfg.Backend.MaxRetries != 3 {
		t.Errorf("expected default retries, got %d", cfg.Backend.MaxRetries)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
