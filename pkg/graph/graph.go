// Package graph looks up concept metadata from the knowledge graph.
// When no graph backend is configured a no-op adapter stands in,
// returning safe empty defaults so generation degrades gracefully.
package graph

import "context"

// Graph answers concept lookups used to enrich prompt context.
type Graph interface {
	// Definition returns a concept's stored definition, or "" if unknown.
	Definition(ctx context.Context, concept string) (string, error)
	// Prerequisites returns the concepts a learner needs first.
	Prerequisites(ctx context.Context, concept string) ([]string, error)
	// Close releases resources.
	Close() error
}

// Noop is the graceful-degradation adapter used when the graph store is
// unreachable or disabled.
type Noop struct{}

// NewNoop creates a Noop graph.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) Definition(context.Context, string) (string, error) { return "", nil }

func (*Noop) Prerequisites(context.Context, string) ([]string, error) { return nil, nil }

func (*Noop) Close() error { return nil }
