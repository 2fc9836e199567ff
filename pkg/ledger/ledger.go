package ledger

import (
	"sync"

	"go.uber.org/zap"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

// defaultPriceModel is the price tier applied to unknown model identifiers.
const defaultPriceModel = "gpt-4-turbo-preview"

// DefaultPrices holds per-1K-token pricing for supported models.
func DefaultPrices() map[string]models.ModelPrice {
	return map[string]models.ModelPrice{
		"gpt-4-turbo-preview": {InputPer1K: 0.01, OutputPer1K: 0.03},
		"gpt-4":               {InputPer1K: 0.03, OutputPer1K: 0.06},
		"gpt-3.5-turbo":       {InputPer1K: 0.0005, OutputPer1K: 0.0015},
	}
}

// Ledger accumulates spend for one learning session and enforces the
// session budget. Counters only ever increase; the ledger is discarded
// when its session ends.
type Ledger struct {
	prices        map[string]models.ModelPrice
	sessionLimit  float64
	lifetimeLimit float64
	logger        *zap.Logger

	mu           sync.Mutex
	cost         float64
	requests     int
	inputTokens  int
	outputTokens int
}

// New creates a Ledger. A nil or empty price table falls back to DefaultPrices.
func New(sessionLimitUSD, lifetimeLimitUSD float64, prices map[string]models.ModelPrice, logger *zap.Logger) *Ledger {
	if len(prices) == 0 {
		prices = DefaultPrices()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		prices:        prices,
		sessionLimit:  sessionLimitUSD,
		lifetimeLimit: lifetimeLimitUSD,
		logger:        logger,
	}
}

// priceFor returns the price tier for a model, defaulting for unknown ids.
func (l *Ledger) priceFor(model string) models.ModelPrice {
	if p, ok := l.prices[model]; ok {
		return p
	}
	if p, ok := l.prices[defaultPriceModel]; ok {
		return p
	}
	return DefaultPrices()[defaultPriceModel]
}

// RecordRequest records one completed backend call and returns its cost
// in USD. Called exactly once per successful backend call.
func (l *Ledger) RecordRequest(inputTokens, outputTokens int, model string) float64 {
	p := l.priceFor(model)
	cost := float64(inputTokens)*p.InputPer1K/1000 + float64(outputTokens)*p.OutputPer1K/1000

	l.mu.Lock()
	l.cost += cost
	l.requests++
	l.inputTokens += inputTokens
	l.outputTokens += outputTokens
	l.mu.Unlock()

	l.logger.Info("api cost recorded",
		zap.Float64("cost_usd", cost),
		zap.Int("input_tokens", inputTokens),
		zap.Int("output_tokens", outputTokens),
		zap.String("model", model),
	)
	return cost
}

// CanAffordRequest reports whether the session budget allows another
// paid call. Advisory: not atomic with RecordRequest, so a burst at the
// boundary can let one extra call through.
func (l *Ledger) CanAffordRequest() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cost >= l.sessionLimit {
		l.logger.Warn("session cost limit reached",
			zap.Float64("session_cost", l.cost),
			zap.Float64("session_limit", l.sessionLimit),
		)
		return false
	}
	return true
}

// Stats returns a summary of the current session spend.
func (l *Ledger) Stats() models.CostStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	avg := 0.0
	if l.requests > 0 {
		avg = l.cost / float64(l.requests)
	}
	remaining := l.sessionLimit - l.cost
	if remaining < 0 {
		remaining = 0
	}
	return models.CostStats{
		TotalCost:         l.cost,
		RequestCount:      l.requests,
		InputTokens:       l.inputTokens,
		OutputTokens:      l.outputTokens,
		AvgCostPerRequest: avg,
		RemainingBudget:   remaining,
	}
}
