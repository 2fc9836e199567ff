package prompts

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

// Postprocess cleans a backend response according to the per-kind output
// contract. It never fails: unparseable responses pass through as-is.
func Postprocess(kind models.Kind, text string) string {
	switch kind {
	case models.KindSimplify:
		return trimToWords(stripQuotes(text), 15)
	case models.KindExplain:
		return truncateAtSentence(text, 60)
	case models.KindApplication:
		if qs, ok := parseQuestions(text); ok {
			out, err := json.Marshal(qs)
			if err == nil {
				return string(out)
			}
		}
		return strings.TrimSpace(text)
	default:
		return strings.TrimSpace(text)
	}
}

func stripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// trimToWords caps a string at max words, appending an ellipsis when cut.
func trimToWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return s
	}
	return strings.Join(words[:max], " ") + "..."
}

// truncateAtSentence cuts an over-long response at the nearest sentence
// boundary before target words, falling back to a hard word cut.
func truncateAtSentence(s string, target int) string {
	words := strings.Fields(s)
	if len(words) <= target {
		return s
	}
	for i := target; i > target-20 && i > 0; i-- {
		w := words[i-1]
		if strings.HasSuffix(w, ".") || strings.HasSuffix(w, "!") || strings.HasSuffix(w, "?") {
			return strings.Join(words[:i], " ")
		}
	}
	return strings.Join(words[:target], " ") + "..."
}

var listPrefix = regexp.MustCompile(`^[\d.\-*\[\]"\s]+`)

// parseQuestions extracts exactly three application questions, first as a
// JSON array, then by salvaging numbered or bulleted lines.
func parseQuestions(text string) ([]string, bool) {
	var qs []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &qs); err == nil && len(qs) == 3 {
		return qs, true
	}

	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = listPrefix.ReplaceAllString(line, "")
		line = strings.Trim(line, `"'`)
		line = strings.TrimRight(line, ",]")
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
		if len(cleaned) == 3 {
			return cleaned, true
		}
	}
	return nil, false
}
