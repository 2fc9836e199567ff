package models

import "time"

// Model identifiers used for content that did not come from a live backend.
const (
	ModelFallback = "fallback_template"
	ModelCached   = "cached"
)

// GeneratedContent is the result envelope returned for every generation request.
type GeneratedContent struct {
	Kind        Kind      `json:"intervention_kind"`
	Content     string    `json:"content"`
	TokensUsed  int       `json:"tokens_used"`
	Model       string    `json:"model"`
	FromCache   bool      `json:"from_cache"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CacheEntry stores one generated intervention in the cache.
type CacheEntry struct {
	Kind         Kind      `json:"intervention_kind"`
	Content      string    `json:"content"`
	TokensUsed   int       `json:"tokens_used"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
	AccessCount  int64     `json:"access_count"`
}

// CacheStats reports cache occupancy and traffic.
type CacheStats struct {
	TotalEntries  int64 `json:"total_entries"`
	MemoryEntries int   `json:"memory_entries"`
	TotalAccesses int64 `json:"total_accesses"`
}
