package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryingCaller invokes a backend client with bounded retries and
// exponential backoff. All backend errors are retried identically up to
// the attempt limit; only request-context cancellation aborts early.
type RetryingCaller struct {
	client      Client
	maxAttempts int
	baseDelay   time.Duration
	timeout     time.Duration
	logger      *zap.Logger
}

// NewRetryingCaller wraps a client with retry behavior. maxAttempts
// defaults to 3, baseDelay to 1s. timeout bounds each individual attempt;
// zero disables the per-attempt deadline.
func NewRetryingCaller(client Client, maxAttempts int, baseDelay, timeout time.Duration, logger *zap.Logger) *RetryingCaller {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingCaller{
		client:      client,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		timeout:     timeout,
		logger:      logger,
	}
}

// Call attempts the backend up to the configured limit. Backoff between
// attempts is baseDelay doubled per failure; the delay sleeps only this
// request, never other in-flight requests.
func (r *RetryingCaller) Call(ctx context.Context, systemPrompt, userPrompt string) (Completion, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		completion, err := r.attempt(ctx, systemPrompt, userPrompt)
		if err == nil {
			return completion, nil
		}
		lastErr = err

		r.logger.Warn("backend attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", r.maxAttempts),
			zap.Error(err),
		)

		if attempt == r.maxAttempts-1 {
			break
		}

		delay := r.baseDelay * (1 << attempt)
		select {
		case <-ctx.Done():
			return Completion{}, &BackendError{Attempts: attempt + 1, Err: ctx.Err()}
		case <-time.After(delay):
		}
	}

	return Completion{}, &BackendError{Attempts: r.maxAttempts, Err: lastErr}
}

// attempt runs a single call under the per-attempt timeout.
func (r *RetryingCaller) attempt(ctx context.Context, systemPrompt, userPrompt string) (Completion, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.client.Complete(ctx, systemPrompt, userPrompt)
}
