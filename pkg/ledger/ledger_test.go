package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

func TestRecordRequestArithmetic(t *testing.T) {
	l := New(5.00, 50.00, nil, zap.NewNop())

	cost := l.RecordRequest(100, 50, "gpt-4-turbo-preview")
	assert.InDelta(t, 0.0025, cost, 1e-9)

	stats := l.Stats()
	assert.InDelta(t, 0.0025, stats.TotalCost, 1e-9)
	assert.Equal(t, 1, stats.RequestCount)
	assert.Equal(t, 100, stats.InputTokens)
	assert.Equal(t, 50, stats.OutputTokens)
	assert.InDelta(t, 5.00-0.0025, stats.RemainingBudget, 1e-9)
}

func TestUnknownModelUsesDefaultTier(t *testing.T) {
	l := New(5.00, 50.00, nil, zap.NewNop())

	known := l.RecordRequest(1000, 1000, "gpt-4-turbo-preview")
	unknown := l.RecordRequest(1000, 1000, "some-future-model")
	assert.InDelta(t, known, unknown, 1e-9)
}

func TestCustomPriceTable(t *testing.T) {
	prices := map[string]models.ModelPrice{
		"tiny": {InputPer1K: 0.001, OutputPer1K: 0.002},
	}
	l := New(5.00, 50.00, prices, zap.NewNop())

	cost := l.RecordRequest(2000, 1000, "tiny")
	assert.InDelta(t, 0.004, cost, 1e-9)
}

func TestCanAffordRequest(t *testing.T) {
	l := New(0.01, 50.00, nil, zap.NewNop())
	require.True(t, l.CanAffordRequest())

	// 1000 in + 1000 out at the default tier costs $0.04, over the $0.01 limit.
	l.RecordRequest(1000, 1000, "gpt-4-turbo-preview")
	assert.False(t, l.CanAffordRequest())
}

func TestStatsAverage(t *testing.T) {
	l := New(5.00, 50.00, nil, zap.NewNop())
	assert.Zero(t, l.Stats().AvgCostPerRequest)

	l.RecordRequest(100, 50, "gpt-4-turbo-preview")
	l.RecordRequest(100, 50, "gpt-4-turbo-preview")

	stats := l.Stats()
	assert.Equal(t, 2, stats.RequestCount)
	assert.InDelta(t, stats.TotalCost/2, stats.AvgCostPerRequest, 1e-9)
}

func TestRemainingBudgetNeverNegative(t *testing.T) {
	l := New(0.001, 50.00, nil, zap.NewNop())
	l.RecordRequest(1000, 1000, "gpt-4")
	assert.Zero(t, l.Stats().RemainingBudget)
}

func TestConcurrentRecording(t *testing.T) {
	l := New(100.00, 1000.00, nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.RecordRequest(10, 5, "gpt-4-turbo-preview")
			}
		}()
	}
	wg.Wait()

	stats := l.Stats()
	assert.Equal(t, 1000, stats.RequestCount)
	assert.Equal(t, 10000, stats.InputTokens)
	assert.Equal(t, 5000, stats.OutputTokens)
}
