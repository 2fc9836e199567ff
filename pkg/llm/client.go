package llm

import (
	"context"
	"fmt"
	"sync"
)

// Completion is the result of one successful backend call.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Client sends a system/user prompt pair to a generation backend.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (Completion, error)
}

// BackendError reports a terminal backend failure after retries.
type BackendError struct {
	Attempts int
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend call failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Factory builds a backend client. It runs on first use, not at startup,
// so construction never needs live credentials and tests inject fakes.
type Factory func() (Client, error)

// Lazy wraps a Factory as a Client that resolves on the first call.
func Lazy(factory Factory) Client {
	return &lazyClient{factory: factory}
}

type lazyClient struct {
	factory Factory

	once   sync.Once
	client Client
	err    error
}

func (l *lazyClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (Completion, error) {
	l.once.Do(func() {
		l.client, l.err = l.factory()
	})
	if l.err != nil {
		return Completion{}, fmt.Errorf("construct backend client: %w", l.err)
	}
	return l.client.Complete(ctx, systemPrompt, userPrompt)
}
