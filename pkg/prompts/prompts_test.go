package prompts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

func TestBuildCoversAllKinds(t *testing.T) {
	ctx := map[string]string{
		"concept_name":    "photosynthesis",
		"original_phrase": "utilize sunlight",
		"wrong_answer":    "plants eat soil",
		"correct_answer":  "plants make food from light",
	}
	for _, kind := range models.Kinds() {
		prompt, err := Build(kind, ctx)
		require.NoError(t, err, "kind %s", kind)
		assert.NotEmpty(t, prompt, "kind %s", kind)
	}
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build(models.Kind("bogus"), nil)
	assert.Error(t, err)
}

func TestSystemPromptPerKind(t *testing.T) {
	base := System(models.Kind("bogus"))
	for _, kind := range models.Kinds() {
		sys := System(kind)
		assert.True(t, strings.HasPrefix(sys, base), "system prompt keeps the shared base")
		assert.Greater(t, len(sys), len(base), "kind %s should extend the base", kind)
	}
}

func TestBuildExplainIncludesPrerequisites(t *testing.T) {
	prompt, err := Build(models.KindExplain, map[string]string{
		"concept_name":          "osmosis",
		"missing_prerequisites": "diffusion, concentration",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "diffusion, concentration")

	prompt, err = Build(models.KindExplain, map[string]string{"concept_name": "osmosis"})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "also doesn't know")
}

func TestBuildRescueFrustrationLevel(t *testing.T) {
	high, err := Build(models.KindRescue, map[string]string{"frustration_score": "0.9"})
	require.NoError(t, err)
	assert.Contains(t, high, "highly frustrated")

	mild, err := Build(models.KindRescue, map[string]string{"frustration_score": "0.4"})
	require.NoError(t, err)
	assert.Contains(t, mild, "moderately frustrated")
}

func TestBuildPlateauMethods(t *testing.T) {
	prompt, err := Build(models.KindPlateau, map[string]string{
		"concept_name":   "fractions",
		"new_method":     "story_analogy",
		"failed_methods": "visual_diagram, peer_explanation",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "vivid story or analogy")
	assert.Contains(t, prompt, "- visual_diagram")

	prompt, err = Build(models.KindPlateau, map[string]string{"new_method": "unheard_of"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "completely different approach")
	assert.Contains(t, prompt, "- (none)")
}

func TestPostprocessSimplify(t *testing.T) {
	got := Postprocess(models.KindSimplify, `"a short simple phrase"`)
	assert.Equal(t, "a short simple phrase", got)

	long := strings.Repeat("word ", 20)
	got = Postprocess(models.KindSimplify, long)
	assert.Len(t, strings.Fields(got), 15)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestPostprocessExplainTruncates(t *testing.T) {
	short := "Osmosis moves water across a membrane."
	assert.Equal(t, short, Postprocess(models.KindExplain, short))

	long := strings.Repeat("water moves across. ", 30)
	got := Postprocess(models.KindExplain, long)
	assert.LessOrEqual(t, len(strings.Fields(got)), 61)
	assert.True(t, strings.HasSuffix(got, "."), "should cut at a sentence boundary")
}

func TestPostprocessApplicationJSON(t *testing.T) {
	raw := `["How would you split a pizza?", "Why do recipes scale?", "When do maps use ratios?"]`
	got := Postprocess(models.KindApplication, raw)

	var qs []string
	require.NoError(t, json.Unmarshal([]byte(got), &qs))
	assert.Len(t, qs, 3)
	assert.Equal(t, "How would you split a pizza?", qs[0])
}

func TestPostprocessApplicationSalvage(t *testing.T) {
	raw := "1. How would you split a pizza?\n2. Why do recipes scale?\n3. When do maps use ratios?"
	got := Postprocess(models.KindApplication, raw)

	var qs []string
	require.NoError(t, json.Unmarshal([]byte(got), &qs))
	assert.Len(t, qs, 3)
	assert.Equal(t, "Why do recipes scale?", qs[1])
}

func TestPostprocessApplicationUnparseable(t *testing.T) {
	raw := "only one question here"
	assert.Equal(t, raw, Postprocess(models.KindApplication, raw))
}
