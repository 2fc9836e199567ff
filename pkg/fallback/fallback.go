// Package fallback produces deterministic, rule-based intervention
// content for when the backend is unavailable or disallowed by policy.
package fallback

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

// simplifyMap is a word-level substitution table for complex vocabulary.
var simplifyMap = map[string]string{
	"utilize":       "use",
	"commence":      "start",
	"terminate":     "end",
	"approximately": "about",
	"numerous":      "many",
	"substantial":   "large",
	"facilitate":    "help",
	"obtain":        "get",
	"possess":       "have",
	"demonstrate":   "show",
	"indicates":     "shows",
	"sufficient":    "enough",
	"regarding":     "about",
	"therefore":     "so",
	"however":       "but",
}

// Engine generates template-based content for every intervention kind.
// It is pure and never fails: unknown kinds map to a generic template.
type Engine struct {
	simplifyPatterns map[*regexp.Regexp]string
}

// New creates an Engine with compiled substitution patterns.
func New() *Engine {
	patterns := make(map[*regexp.Regexp]string, len(simplifyMap))
	for complex, simple := range simplifyMap {
		patterns[regexp.MustCompile(`(?i)\b`+complex+`\b`)] = simple
	}
	return &Engine{simplifyPatterns: patterns}
}

// Generate returns deterministic content for a kind and context.
func (e *Engine) Generate(kind models.Kind, ctx map[string]string) string {
	switch kind {
	case models.KindSimplify:
		return e.simplify(ctx)
	case models.KindExplain:
		return explain(ctx)
	case models.KindMisconception:
		return misconception(ctx)
	case models.KindRescue:
		return rescue()
	case models.KindPlateau:
		return plateau()
	case models.KindApplication:
		return application(ctx)
	default:
		return "Let's review this concept together."
	}
}

func (e *Engine) simplify(ctx map[string]string) string {
	result := ctx["original_phrase"]
	for pattern, simple := range e.simplifyPatterns {
		result = pattern.ReplaceAllString(result, simple)
	}
	return result
}

func conceptOr(ctx map[string]string, fallback string) string {
	if c := ctx["concept_name"]; c != "" {
		return c
	}
	return fallback
}

func explain(ctx map[string]string) string {
	return fmt.Sprintf(
		"%s is an important concept in this topic. "+
			"Let's break it down step by step to understand what it means.",
		conceptOr(ctx, "This concept"),
	)
}

func misconception(ctx map[string]string) string {
	return fmt.Sprintf(
		"There's a common misunderstanding about %s. "+
			"Let's clarify what it actually means.",
		conceptOr(ctx, "this"),
	)
}

func rescue() string {
	return "This is challenging material, and that's completely normal. " +
		"Let me try explaining it in a different way."
}

func plateau() string {
	return "Sometimes a concept clicks when we approach it differently. " +
		"Let's try a new perspective."
}

func application(ctx map[string]string) string {
	concept := conceptOr(ctx, "this concept")
	questions := []string{
		fmt.Sprintf("How would you use %s in a real situation?", concept),
		fmt.Sprintf("Can you think of an example of %s in everyday life?", concept),
		fmt.Sprintf("What would happen if %s didn't exist?", concept),
	}
	out, _ := json.Marshal(questions)
	return string(out)
}
