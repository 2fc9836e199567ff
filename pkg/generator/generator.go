// Package generator orchestrates intervention content generation:
// cache lookup, budget and rate policy, the retrying backend call, and
// template fallback. Every request resolves to usable content; the only
// hard error is an unknown intervention kind.
package generator

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/brightpath-ai/brightpath/pkg/cache"
	"github.com/brightpath-ai/brightpath/pkg/fallback"
	"github.com/brightpath-ai/brightpath/pkg/graph"
	"github.com/brightpath-ai/brightpath/pkg/ledger"
	"github.com/brightpath-ai/brightpath/pkg/llm"
	"github.com/brightpath-ai/brightpath/pkg/models"
	"github.com/brightpath-ai/brightpath/pkg/prompts"
	"github.com/brightpath-ai/brightpath/pkg/ratelimit"
)

// Generator coordinates the generation pipeline. It is safe for
// concurrent use; identical in-flight requests are collapsed so one
// backend call serves them all.
type Generator struct {
	cache    *cache.Store
	limiter  *ratelimit.Limiter
	caller   *llm.RetryingCaller
	fallback *fallback.Engine
	graph    graph.Graph
	model    string
	logger   *zap.Logger

	flight singleflight.Group
}

// New creates a Generator wired with all dependencies.
func New(store *cache.Store, limiter *ratelimit.Limiter, caller *llm.RetryingCaller,
	fb *fallback.Engine, gr graph.Graph, model string, logger *zap.Logger) *Generator {
	if gr == nil {
		gr = graph.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		cache:    store,
		limiter:  limiter,
		caller:   caller,
		fallback: fb,
		graph:    gr,
		model:    model,
		logger:   logger,
	}
}

// Generate handles one generation request against the given session
// ledger. The returned error is non-nil only for an unknown intervention
// kind; every other failure resolves to cached or fallback content.
func (g *Generator) Generate(ctx context.Context, req models.GenerationRequest, led *ledger.Ledger) (models.GeneratedContent, error) {
	kind, err := models.ParseKind(req.Kind)
	if err != nil {
		return models.GeneratedContent{}, err
	}

	reqCtx := g.enrichContext(ctx, kind, req.Context)
	fp := cache.Fingerprint(kind, reqCtx)

	if entry, ok := g.cache.Get(fp); ok {
		g.logger.Debug("cache hit", zap.String("kind", kind.String()))
		return models.GeneratedContent{
			Kind:        entry.Kind,
			Content:     entry.Content,
			TokensUsed:  entry.TokensUsed,
			Model:       models.ModelCached,
			FromCache:   true,
			GeneratedAt: entry.CreatedAt,
		}, nil
	}
	g.logger.Debug("cache miss", zap.String("kind", kind.String()))

	v, _, _ := g.flight.Do(fp, func() (any, error) {
		return g.generateMiss(ctx, kind, reqCtx, fp, req.Priority, led), nil
	})
	return v.(models.GeneratedContent), nil
}

// generateMiss runs the paid-call path: budget check, rate check,
// backend call with retries, ledger update, and cache write. Any policy
// rejection or backend failure degrades to a fallback template.
func (g *Generator) generateMiss(ctx context.Context, kind models.Kind, reqCtx map[string]string,
	fp string, priority models.Priority, led *ledger.Ledger) models.GeneratedContent {

	if !led.CanAffordRequest() {
		g.logger.Warn("cost limit exceeded, using fallback template", zap.String("kind", kind.String()))
		return g.fallbackContent(kind, reqCtx)
	}

	if !g.limiter.CanProceed() && priority != models.PriorityCritical {
		g.logger.Warn("rate limit reached, using fallback template", zap.String("kind", kind.String()))
		return g.fallbackContent(kind, reqCtx)
	}

	userPrompt, err := prompts.Build(kind, reqCtx)
	if err != nil {
		// Unreachable for a parsed kind; degrade rather than fail.
		g.logger.Error("prompt build failed", zap.Error(err))
		return g.fallbackContent(kind, reqCtx)
	}

	g.limiter.RecordAttempt()

	completion, err := g.caller.Call(ctx, prompts.System(kind), userPrompt)
	if err != nil {
		g.logger.Error("generation failed, using fallback template",
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		// Fallback content is never cached: a later successful call can
		// still populate the real entry.
		return g.fallbackContent(kind, reqCtx)
	}

	led.RecordRequest(completion.InputTokens, completion.OutputTokens, g.model)

	text := prompts.Postprocess(kind, completion.Text)
	now := time.Now().UTC()
	content := models.GeneratedContent{
		Kind:        kind,
		Content:     text,
		TokensUsed:  completion.InputTokens + completion.OutputTokens,
		Model:       g.model,
		FromCache:   false,
		GeneratedAt: now,
	}

	if err := g.cache.Set(fp, models.CacheEntry{
		Kind:       kind,
		Content:    text,
		TokensUsed: content.TokensUsed,
		Model:      g.model,
		CreatedAt:  now,
	}); err != nil {
		g.logger.Error("cache write failed", zap.Error(err))
	}

	return content
}

// fallbackContent wraps a deterministic template in the result envelope.
func (g *Generator) fallbackContent(kind models.Kind, reqCtx map[string]string) models.GeneratedContent {
	return models.GeneratedContent{
		Kind:        kind,
		Content:     g.fallback.Generate(kind, reqCtx),
		TokensUsed:  0,
		Model:       models.ModelFallback,
		FromCache:   false,
		GeneratedAt: time.Now().UTC(),
	}
}

// enrichContext fills concept metadata from the knowledge graph when the
// caller did not supply it. Graph failures are ignored: the no-op
// adapter and an unreachable store behave the same.
func (g *Generator) enrichContext(ctx context.Context, kind models.Kind, reqCtx map[string]string) map[string]string {
	enriched := make(map[string]string, len(reqCtx)+2)
	for k, v := range reqCtx {
		enriched[k] = v
	}

	concept := enriched["concept_name"]
	if concept == "" {
		return enriched
	}

	if _, ok := enriched["concept_definition"]; !ok {
		if def, err := g.graph.Definition(ctx, concept); err == nil && def != "" {
			enriched["concept_definition"] = def
		}
	}
	if _, ok := enriched["missing_prerequisites"]; !ok && kind == models.KindExplain {
		if prereqs, err := g.graph.Prerequisites(ctx, concept); err == nil && len(prereqs) > 0 {
			enriched["missing_prerequisites"] = strings.Join(prereqs, ", ")
		}
	}
	return enriched
}
