package cache

import (
	"testing"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := map[string]string{"concept_name": "photosynthesis", "grade_level": "8", "subject": "biology"}
	b := map[string]string{"subject": "biology", "grade_level": "8", "concept_name": "photosynthesis"}

	f1 := Fingerprint(models.KindExplain, a)
	f2 := Fingerprint(models.KindExplain, b)
	if f1 != f2 {
		t.Errorf("equivalent contexts produced different fingerprints: %s vs %s", f1, f2)
	}
	if len(f1) != 64 {
		t.Errorf("expected 64-char hex fingerprint, got %d chars", len(f1))
	}
}

func TestFingerprintVariesByKind(t *testing.T) {
	ctx := map[string]string{"concept_name": "photosynthesis"}
	if Fingerprint(models.KindExplain, ctx) == Fingerprint(models.KindSimplify, ctx) {
		t.Error("different kinds should produce different fingerprints")
	}
}

func TestFingerprintDelimiterValuesDoNotCollide(t *testing.T) {
	// Free-text values may contain any characters; a value embedding
	// what looks like another key=value pair must still hash apart from
	// a context that actually has that pair.
	f1 := Fingerprint(models.KindExplain, map[string]string{"a": "1|b=2"})
	f2 := Fingerprint(models.KindExplain, map[string]string{"a": "1", "b": "2"})
	if f1 == f2 {
		t.Errorf("distinct contexts produced the same fingerprint: %s", f1)
	}

	f3 := Fingerprint(models.KindSimplify, map[string]string{"original_phrase": "x|z="})
	f4 := Fingerprint(models.KindSimplify, map[string]string{"original_phrase": "x", "z": ""})
	if f3 == f4 {
		t.Errorf("distinct contexts produced the same fingerprint: %s", f3)
	}
}

func TestFingerprintVariesByContext(t *testing.T) {
	f1 := Fingerprint(models.KindExplain, map[string]string{"concept_name": "osmosis"})
	f2 := Fingerprint(models.KindExplain, map[string]string{"concept_name": "diffusion"})
	if f1 == f2 {
		t.Error("different contexts should produce different fingerprints")
	}
}
