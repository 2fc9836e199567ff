package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/brightpath-ai/brightpath/pkg/cache"
	"github.com/brightpath-ai/brightpath/pkg/config"
	"github.com/brightpath-ai/brightpath/pkg/fallback"
	"github.com/brightpath-ai/brightpath/pkg/generator"
	"github.com/brightpath-ai/brightpath/pkg/graph"
	"github.com/brightpath-ai/brightpath/pkg/llm"
	"github.com/brightpath-ai/brightpath/pkg/ratelimit"
)

// loadConfig falls back to built-in defaults when no path is given,
// which keeps the one-off commands usable without a config file.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// buildCore assembles the generation pipeline shared by the server and
// the one-off generate command. The returned cleanup closes the cache
// and graph stores.
func buildCore(cfg *config.Config, logger *zap.Logger) (*generator.Generator, *cache.Store, func(), error) {
	store, err := cache.New(cfg.DBPath, cfg.Cache.MemoryCapacity, cfg.Cache.TTLDays)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init cache: %w", err)
	}

	var gr graph.Graph = graph.NewNoop()
	if cfg.Graph.Enabled {
		sg, err := graph.New(cfg.Graph.DBPath)
		if err != nil {
			_ = store.Close()
			return nil, nil, nil, fmt.Errorf("init graph: %w", err)
		}
		gr = sg
	}

	client := llm.Lazy(func() (llm.Client, error) {
		return llm.NewOpenAIClient(cfg.Backend)
	})
	caller := llm.NewRetryingCaller(client, cfg.Backend.MaxRetries, 0, cfg.Backend.Timeout, logger)
	limiter := ratelimit.New(cfg.Rate.RequestsPerMinute, cfg.Rate.Window)

	gen := generator.New(store, limiter, caller, fallback.New(), gr, cfg.Backend.Model, logger)

	cleanup := func() {
		_ = gr.Close()
		_ = store.Close()
	}
	return gen, store, cleanup, nil
}
