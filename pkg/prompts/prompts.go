// Package prompts builds the system and user prompts for each
// intervention kind and post-processes backend responses.
package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

const systemBase = "You are Brightpath, an AI tutor for high school students. " +
	"Your explanations are clear, encouraging, and grade-appropriate. " +
	"You never talk down to students or use baby language. " +
	"You make complex topics accessible without oversimplifying them."

var systemSuffixes = map[models.Kind]string{
	models.KindSimplify:      " When simplifying, maintain accuracy while reducing complexity.",
	models.KindExplain:       " When explaining, assume zero prior knowledge and use concrete examples.",
	models.KindMisconception: " When addressing misconceptions, be non-judgmental and empathetic.",
	models.KindRescue:        " When rescuing from frustration, validate the difficulty and offer a fresh perspective.",
	models.KindPlateau:       " When using a new method, make the analogy vivid and relatable.",
	models.KindApplication:   " When creating questions, make them require genuine understanding, not just recall.",
}

// methodInstructions maps plateau re-explanation methods to instructions.
var methodInstructions = map[string]string{
	"story_analogy":          "Explain using a vivid story or analogy from everyday life",
	"visual_diagram":         "Describe a visual representation (but in text form)",
	"real_world_example":     "Use a concrete real-world application",
	"interactive_simulation": "Describe hands-on experimentation",
	"peer_explanation":       "Write as if student is explaining to a friend",
}

// System returns the system prompt for an intervention kind.
func System(kind models.Kind) string {
	return systemBase + systemSuffixes[kind]
}

// Build constructs the user prompt for a kind and context.
func Build(kind models.Kind, ctx map[string]string) (string, error) {
	switch kind {
	case models.KindSimplify:
		return buildSimplify(ctx), nil
	case models.KindExplain:
		return buildExplain(ctx), nil
	case models.KindMisconception:
		return buildMisconception(ctx), nil
	case models.KindRescue:
		return buildRescue(ctx), nil
	case models.KindPlateau:
		return buildPlateau(ctx), nil
	case models.KindApplication:
		return buildApplication(ctx), nil
	default:
		return "", fmt.Errorf("no prompt builder for kind %q", kind)
	}
}

func ctxOr(ctx map[string]string, key, fallback string) string {
	if v, ok := ctx[key]; ok && v != "" {
		return v
	}
	return fallback
}

func gradeLevel(ctx map[string]string) string {
	return ctxOr(ctx, "grade_level", "8")
}

func buildSimplify(ctx map[string]string) string {
	phrase := ctx["original_phrase"]
	sentence := ctxOr(ctx, "surrounding_sentence", phrase)

	return fmt.Sprintf(
		"Simplify this phrase for a grade %s student learning %s.\n\n"+
			"Original phrase: %q\n"+
			"Full sentence: %q\n\n"+
			"Requirements:\n"+
			"- Maximum 15 words\n"+
			"- Maintain the core meaning\n"+
			"- Use simpler vocabulary\n"+
			"- Keep it accurate\n"+
			"- Don't add new concepts\n\n"+
			"Return ONLY the simplified phrase, nothing else.",
		gradeLevel(ctx), ctxOr(ctx, "subject", "this topic"), phrase, sentence,
	)
}

func buildExplain(ctx map[string]string) string {
	concept := ctxOr(ctx, "concept_name", "this concept")
	topic := ctxOr(ctx, "lesson_topic", "the current topic")

	prereqNote := ""
	if prereqs := ctx["missing_prerequisites"]; prereqs != "" {
		prereqNote = fmt.Sprintf(
			"\n\nNote: The student also doesn't know: %s. Keep that in mind.", prereqs)
	}

	return fmt.Sprintf(
		"Explain %q to a grade %s student who has never heard of it before.\n\n"+
			"Context: They're learning about %s.%s\n\n"+
			"Requirements:\n"+
			"- 40-60 words (readable in ~15 seconds)\n"+
			"- Assume zero prior knowledge\n"+
			"- Use a concrete example\n"+
			"- Make it memorable\n"+
			"- Don't use jargon without explaining it\n\n"+
			"Return ONLY the explanation, nothing else.",
		concept, gradeLevel(ctx), topic, prereqNote,
	)
}

func buildMisconception(ctx map[string]string) string {
	concept := ctxOr(ctx, "concept_name", "this concept")

	return fmt.Sprintf(
		"A student previously answered a question about %q incorrectly.\n\n"+
			"Their answer: %q\n"+
			"Correct answer: %q\n\n"+
			"Before we teach the correct version, write a brief inoculation message that:\n"+
			"1. Acknowledges this is a common misconception\n"+
			"2. Explains why people often think that\n"+
			"3. Previews the correct version without full detail\n\n"+
			"Requirements:\n"+
			"- 50-80 words\n"+
			"- Non-judgmental tone (never \"you were wrong\")\n"+
			"- Use \"a common misconception is...\" framing\n"+
			"- Don't make the student feel bad\n"+
			"- Grade %s appropriate\n\n"+
			"Return ONLY the inoculation message, nothing else.",
		concept, ctx["wrong_answer"], ctx["correct_answer"], gradeLevel(ctx),
	)
}

func buildRescue(ctx map[string]string) string {
	concept := ctxOr(ctx, "concept_name", "this concept")
	topic := ctxOr(ctx, "lesson_topic", "the current topic")
	attempts := ctxOr(ctx, "failed_attempts", "1")

	level := "moderately"
	if score, err := strconv.ParseFloat(ctx["frustration_score"], 64); err == nil && score > 0.75 {
		level = "highly"
	}

	return fmt.Sprintf(
		"A student is %s frustrated learning about %q in %s.\n\n"+
			"They've tried %s times and are about to give up.\n\n"+
			"Write a rescue message that:\n"+
			"1. Validates that this IS hard (don't minimize)\n"+
			"2. Reframes difficulty as growth\n"+
			"3. Offers a specific different approach to try\n\n"+
			"Requirements:\n"+
			"- 60-100 words\n"+
			"- Empathetic and genuine (not fake-cheerful)\n"+
			"- Propose ONE clear next step\n"+
			"- Use \"Let me try...\" or \"What if we...\" framing\n"+
			"- Grade %s tone\n\n"+
			"Return ONLY the rescue message, nothing else.",
		level, concept, topic, attempts, gradeLevel(ctx),
	)
}

func buildPlateau(ctx map[string]string) string {
	concept := ctxOr(ctx, "concept_name", "this concept")

	instruction, ok := methodInstructions[ctx["new_method"]]
	if !ok {
		instruction = "Try a completely different approach"
	}

	methodsList := "- (none)"
	if failed := ctx["failed_methods"]; failed != "" {
		var lines []string
		for _, m := range strings.Split(failed, ",") {
			lines = append(lines, "- "+strings.TrimSpace(m))
		}
		methodsList = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(
		"A student has failed to understand %q after trying these approaches:\n"+
			"%s\n\n"+
			"Now try explaining it using this method: %s\n\n"+
			"Concept definition (for reference): %q\n\n"+
			"Requirements:\n"+
			"- 80-120 words\n"+
			"- Make it vivid and memorable\n"+
			"- This is their last chance before giving up\n"+
			"- Grade %s appropriate\n"+
			"- Don't mention that previous attempts failed\n\n"+
			"Return ONLY the new explanation, nothing else.",
		concept, methodsList, instruction, ctx["concept_definition"], gradeLevel(ctx),
	)
}

func buildApplication(ctx map[string]string) string {
	concept := ctxOr(ctx, "concept_name", "this concept")

	return fmt.Sprintf(
		"A student understands the theory of %q but we need to test if they can APPLY it.\n\n"+
			"Definition: %q\n\n"+
			"Generate 3 real-world questions that require applying this concept to a new situation.\n\n"+
			"Requirements:\n"+
			"- Each question 10-20 words\n"+
			"- Cannot be answered by just recalling the definition\n"+
			"- Require genuine understanding and reasoning\n"+
			"- Use realistic scenarios a grade %s student would recognize\n"+
			"- No hypothetical sci-fi scenarios\n\n"+
			"Format: Return as JSON array of strings.\n"+
			"Example: [\"Question 1 text\", \"Question 2 text\", \"Question 3 text\"]\n\n"+
			"Return ONLY the JSON array, nothing else.",
		concept, ctx["concept_definition"], gradeLevel(ctx),
	)
}
