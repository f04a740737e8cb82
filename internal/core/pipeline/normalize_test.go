package pipeline

import (
	"testing"

	"pantry-chef/internal/core/vocab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	v, err := vocab.Load()
	require.NoError(t, err)
	return NewNormalizer(v)
}

func TestCuisineCoercion(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		raw     string
		want    string
		matched bool
	}{
		{"Italian", "Italian", true},
		{"italian", "Italian", true},
		{"middle eastern", "Middle Eastern", true},
		{"Klingon", "Other", false},
		{"", "Other", false},
	}
	for _, tt := range tests {
		got, matched := n.Cuisine(tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
		assert.Equal(t, tt.matched, matched, "raw %q", tt.raw)
	}
}

func TestDietCoercion(t *testing.T) {
	n := newTestNormalizer(t)

	got, matched := n.Diet("Vegan")
	assert.Equal(t, "vegan", got)
	assert.True(t, matched)

	got, matched = n.Diet("carnivore")
	assert.Equal(t, "omnivore", got)
	assert.False(t, matched)
}

func TestDifficultyHeuristics(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		raw     string
		want    string
		matched bool
	}{
		{"Moderate", "Moderate", true},
		{"moderate", "Moderate", true},
		{"easy", "Simplistic", true},
		{"super simple", "Simplistic", true},
		{"medium", "Moderate", true},
		{"hard", "Moderate", true},
		{"complex", "Elevated", true},
		{"chef level", "Elevated", true},
		{"trivial", "Moderate", false},
	}
	for _, tt := range tests {
		got, matched := n.Difficulty(tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
		assert.Equal(t, tt.matched, matched, "raw %q", tt.raw)
	}
}

func TestProteinTypeCoercion(t *testing.T) {
	n := newTestNormalizer(t)

	got, matched := n.ProteinType("chicken")
	assert.Equal(t, "Chicken", got)
	assert.True(t, matched)

	got, matched = n.ProteinType("Tofu")
	assert.Equal(t, "Tofu", got)
	assert.True(t, matched)

	// The fallback is itself a tier-2 exemplar, so fallback output always
	// satisfies the vocabulary invariant.
	got, matched = n.ProteinType("mystery meat")
	assert.Equal(t, "Vegetarian", got)
	assert.False(t, matched)
}

func TestMealTypesKeepsKnownTagsOnly(t *testing.T) {
	n := newTestNormalizer(t)

	kept, dropped := n.MealTypes([]string{"Breakfast", "Nonsense", "Main Course"})
	assert.Equal(t, []string{"Breakfast", "Main Course"}, kept)
	assert.Equal(t, []string{"Nonsense"}, dropped)

	// Tag matching is verbatim, not case-insensitive.
	kept, dropped = n.MealTypes([]string{"breakfast"})
	assert.Empty(t, kept)
	assert.Equal(t, []string{"breakfast"}, dropped)

	kept, dropped = n.MealTypes(nil)
	assert.NotNil(t, kept)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)
}

func TestPhaseHeuristics(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		raw     string
		want    string
		matched bool
	}{
		{"Prep", "Prep", true},
		{" cook ", "Cook", true},
		{"preparation", "Prep", true},
		{"bake in the oven", "Cook", true},
		{"plate and garnish", "Serve", true},
		{"final assembly", "Serve", true},
		{"whatever", "Cook", false},
	}
	for _, tt := range tests {
		got, matched := n.Phase(tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
		assert.Equal(t, tt.matched, matched, "raw %q", tt.raw)
	}
}
