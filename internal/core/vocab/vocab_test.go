package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTables(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, s.Cuisines)
	assert.NotEmpty(t, s.Diets)
	assert.Len(t, s.Difficulties, 3)
	assert.NotEmpty(t, s.ProteinCategories)
	assert.NotEmpty(t, s.MealClassification)
	assert.Len(t, s.CleanupScale, 5)
}

func TestFallbackValuesAreInVocabulary(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	// Normalization fallbacks must be valid outputs themselves.
	assert.True(t, s.HasCuisine("Other"))
	assert.True(t, s.HasDiet("omnivore"))
	assert.True(t, s.HasDifficulty("Moderate"))
	assert.True(t, s.HasProtein("Vegetarian"))
}

func TestLookupCasing(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	// Cuisine lookups are case-sensitive.
	assert.True(t, s.HasCuisine("Italian"))
	assert.False(t, s.HasCuisine("italian"))

	// Protein lookups are case-insensitive.
	assert.True(t, s.HasProtein("chicken"))
	assert.True(t, s.HasProtein("CHICKEN"))

	// Meal tags match verbatim only.
	assert.True(t, s.HasMealTag("Breakfast"))
	assert.False(t, s.HasMealTag("breakfast"))
}

func TestProteinExemplarsFlattened(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	exemplars := s.ProteinExemplars()
	assert.Contains(t, exemplars, "Chicken")
	assert.Contains(t, exemplars, "Tofu")
	assert.Contains(t, exemplars, "Vegetarian")
}

func TestCleanupGuide(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	guide := s.CleanupGuide()
	assert.Contains(t, guide, "CLEANUP FACTOR GUIDE (1-5):")
	assert.Contains(t, guide, "- 1:")
	assert.Contains(t, guide, "- 5:")
}
