package pipeline

import (
	"strings"

	"pantry-chef/internal/core/vocab"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallback values applied when a categorical value cannot be matched.
const (
	FallbackCuisine    = "Other"
	FallbackDiet       = "omnivore"
	FallbackDifficulty = "Moderate"
	FallbackProtein    = "Vegetarian"
	FallbackPhase      = "Cook"
)

// Canonical instruction phases.
const (
	PhasePrep  = "Prep"
	PhaseCook  = "Cook"
	PhaseServe = "Serve"
)

// titleCase title-cases every word. A fresh Caser per call: cases.Caser is
// not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Normalizer coerces raw categorical values onto the closed vocabulary.
// Every method returns the canonical value plus whether the input matched
// (directly or via a heuristic); matched==false means the fallback was
// applied. Methods never fail.
type Normalizer struct {
	vocab *vocab.Store
}

// NewNormalizer returns a Normalizer over the given vocabulary.
func NewNormalizer(v *vocab.Store) *Normalizer {
	return &Normalizer{vocab: v}
}

// Cuisine matches exactly, then title-cased, then falls back to "Other".
func (n *Normalizer) Cuisine(raw string) (string, bool) {
	if n.vocab.HasCuisine(raw) {
		return raw, true
	}
	if titled := titleCase(raw); n.vocab.HasCuisine(titled) {
		return titled, true
	}
	return FallbackCuisine, false
}

// Diet matches the lower-cased value, falling back to "omnivore".
func (n *Normalizer) Diet(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	if n.vocab.HasDiet(lower) {
		return lower, true
	}
	return FallbackDiet, false
}

// Difficulty matches the title-cased value against the fixed three-value
// set, then applies keyword heuristics in order; first matching rule wins.
func (n *Normalizer) Difficulty(raw string) (string, bool) {
	titled := titleCase(raw)
	if n.vocab.HasDifficulty(titled) {
		return titled, true
	}

	if strings.Contains(titled, "Easy") || strings.Contains(titled, "Simple") {
		return "Simplistic", true
	}
	if strings.Contains(titled, "Medium") || strings.Contains(titled, "Hard") {
		return "Moderate", true
	}
	if strings.Contains(titled, "Complex") || strings.Contains(titled, "Advanced") || strings.Contains(titled, "Chef") {
		return "Elevated", true
	}

	return FallbackDifficulty, false
}

// ProteinType matches the lower-cased value against the flattened tier-2
// exemplar set and returns it title-cased, falling back to "Vegetarian".
func (n *Normalizer) ProteinType(raw string) (string, bool) {
	if n.vocab.HasProtein(raw) {
		return titleCase(raw), true
	}
	return FallbackProtein, false
}

// MealTypes keeps only tags present verbatim in the flattened tag set. The
// kept list may shrink to empty; no fallback value is injected. Dropped tags
// are returned for diagnostics.
func (n *Normalizer) MealTypes(raw []string) (kept []string, dropped []string) {
	kept = []string{}
	for _, tag := range raw {
		if n.vocab.HasMealTag(tag) {
			kept = append(kept, tag)
		} else {
			dropped = append(dropped, tag)
		}
	}
	return kept, dropped
}

// Phase strips and title-cases the value, then applies keyword heuristics in
// order, falling back to "Cook".
func (n *Normalizer) Phase(raw string) (string, bool) {
	clean := titleCase(strings.TrimSpace(raw))
	switch clean {
	case PhasePrep, PhaseCook, PhaseServe:
		return clean, true
	}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "prep") {
		return PhasePrep, true
	}
	if strings.Contains(lower, "cook") || strings.Contains(lower, "heat") ||
		strings.Contains(lower, "bake") || strings.Contains(lower, "fry") {
		return PhaseCook, true
	}
	if strings.Contains(lower, "serve") || strings.Contains(lower, "plate") ||
		strings.Contains(lower, "assembl") {
		return PhaseServe, true
	}

	return FallbackPhase, false
}
