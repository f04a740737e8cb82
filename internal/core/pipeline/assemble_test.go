package pipeline

import (
	"fmt"
	"testing"

	"pantry-chef/internal/core/pantry"
	"pantry-chef/internal/core/vocab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssembler(t *testing.T, policy Policy) *Assembler {
	t.Helper()
	v, err := vocab.Load()
	require.NoError(t, err)
	return NewAssembler(v, policy, DefaultFuzzyCutoff)
}

func payloadWith(cuisine, diet, ingredient string, cleanup int) string {
	return fmt.Sprintf(`{
		"title": "Test Dish",
		"cuisine": %q,
		"diet": %q,
		"difficulty": "Moderate",
		"cleanup_factor": %d,
		"protein_type": "Pork",
		"meal_types": ["Dinner"],
		"ingredient_groups": [
			{"component": "Main", "ingredients": [
				{"name": %q, "amount": 200, "unit": "g"}
			]}
		],
		"instructions": [
			{"phase": "Prep", "step_number": 1, "text": "Chop."},
			{"phase": "Cook", "step_number": 2, "text": "Fry."}
		]
	}`, cuisine, diet, cleanup, ingredient)
}

func TestAssembleCleanPayload(t *testing.T) {
	a := newTestAssembler(t, PolicyStrict)
	idx := newTestIndex()

	rec, warnings, err := a.Assemble(payloadWith("Italian", "omnivore", "Pork", 2), idx)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "Test Dish", rec.Title)
	assert.Equal(t, "Italian", rec.Cuisine)
	assert.Equal(t, "omnivore", rec.Diet)
	assert.Equal(t, 2, rec.CleanupFactor)
	assert.Equal(t, []string{"Dinner"}, rec.MealTypes)
	require.Len(t, rec.IngredientGroups, 1)
	assert.Equal(t, "pork", rec.IngredientGroups[0].Ingredients[0].Name)
}

func TestAssembleLenientCoercions(t *testing.T) {
	a := newTestAssembler(t, PolicyLenient)
	idx := newTestIndex()

	rec, warnings, err := a.Assemble(payloadWith("italian", "Carnivore", "minced pork", 3), idx)
	require.NoError(t, err)

	assert.Equal(t, "Italian", rec.Cuisine)
	assert.Equal(t, "omnivore", rec.Diet)
	assert.Equal(t, "pork", rec.IngredientGroups[0].Ingredients[0].Name)

	kinds := map[WarningKind]int{}
	for _, w := range warnings {
		kinds[w.Kind]++
	}
	// Title-cased cuisine and the substring ingredient match are coercions;
	// the unknown diet fell back.
	assert.Equal(t, 2, kinds[WarnCoercedField])
	assert.Equal(t, 1, kinds[WarnUnresolvedCategory])
}

func TestAssembleLenientImportIngredient(t *testing.T) {
	a := newTestAssembler(t, PolicyLenient)
	idx := newTestIndex()

	rec, warnings, err := a.Assemble(payloadWith("Italian", "omnivore", "Saffron", 3), idx)
	require.NoError(t, err)
	assert.Equal(t, "saffron", rec.IngredientGroups[0].Ingredients[0].Name)

	var found bool
	for _, w := range warnings {
		if w.Kind == WarnUnresolvedIngredient {
			found = true
			assert.Equal(t, "Saffron", w.Received)
			assert.Equal(t, "saffron", w.Substituted)
		}
	}
	assert.True(t, found)
}

func TestAssembleStrictFailsOnUnknownValues(t *testing.T) {
	a := newTestAssembler(t, PolicyStrict)
	idx := newTestIndex()

	var schemaErr *SchemaError

	_, _, err := a.Assemble(payloadWith("Klingon", "omnivore", "Pork", 3), idx)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "cuisine", schemaErr.Field)

	_, _, err = a.Assemble(payloadWith("Italian", "omnivore", "Saffron", 3), idx)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "ingredient", schemaErr.Field)
}

func TestAssembleStrictAcceptsHeuristicMatches(t *testing.T) {
	a := newTestAssembler(t, PolicyStrict)
	idx := newTestIndex()

	// Keyword rewrites count as matches under strict; only fallback
	// application is a failure.
	payload := `{
		"title": "Test Dish",
		"cuisine": "Italian",
		"diet": "omnivore",
		"difficulty": "hard",
		"cleanup_factor": 3,
		"protein_type": "Pork",
		"meal_types": [],
		"ingredient_groups": [
			{"component": "Main", "ingredients": [{"name": "Pork", "amount": 200, "unit": "g"}]}
		],
		"instructions": [{"phase": "Cook", "step_number": 1, "text": "Fry."}]
	}`

	rec, warnings, err := a.Assemble(payload, idx)
	require.NoError(t, err)
	assert.Equal(t, "Moderate", rec.Difficulty)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnCoercedField, warnings[0].Kind)
	assert.Equal(t, "difficulty", warnings[0].Field)
}

func TestAssembleCleanupFactorNeverCoerced(t *testing.T) {
	idx := newTestIndex()

	for _, policy := range []Policy{PolicyStrict, PolicyLenient} {
		a := newTestAssembler(t, policy)
		for _, factor := range []int{0, 6, -1} {
			_, _, err := a.Assemble(payloadWith("Italian", "omnivore", "Pork", factor), idx)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr, "policy %s factor %d", policy, factor)
			assert.Equal(t, "cleanup_factor", schemaErr.Field)
		}
	}
}

func TestAssembleStructuralChecks(t *testing.T) {
	a := newTestAssembler(t, PolicyLenient)
	idx := newTestIndex()

	var schemaErr *SchemaError

	noTitle := `{"title": "", "cuisine": "Italian", "diet": "omnivore", "difficulty": "Moderate",
		"cleanup_factor": 2, "protein_type": "Pork", "meal_types": [],
		"ingredient_groups": [{"component": "Main", "ingredients": [{"name": "Pork", "amount": 1, "unit": "g"}]}],
		"instructions": [{"phase": "Cook", "step_number": 1, "text": "Fry."}]}`
	_, _, err := a.Assemble(noTitle, idx)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "title", schemaErr.Field)

	noStepNumber := `{"title": "Dish", "cuisine": "Italian", "diet": "omnivore", "difficulty": "Moderate",
		"cleanup_factor": 2, "protein_type": "Pork", "meal_types": [],
		"ingredient_groups": [{"component": "Main", "ingredients": [{"name": "Pork", "amount": 1, "unit": "g"}]}],
		"instructions": [{"phase": "Cook", "text": "Fry."}]}`
	_, _, err = a.Assemble(noStepNumber, idx)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "instructions", schemaErr.Field)

	emptyGroup := `{"title": "Dish", "cuisine": "Italian", "diet": "omnivore", "difficulty": "Moderate",
		"cleanup_factor": 2, "protein_type": "Pork", "meal_types": [],
		"ingredient_groups": [{"component": "Main", "ingredients": []}],
		"instructions": [{"phase": "Cook", "step_number": 1, "text": "Fry."}]}`
	_, _, err = a.Assemble(emptyGroup, idx)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "ingredient_groups", schemaErr.Field)
}

func TestAssembleExtractionFailurePropagates(t *testing.T) {
	a := newTestAssembler(t, PolicyLenient)
	idx := newTestIndex()

	_, _, err := a.Assemble("no recipe here", idx)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestBindIngredientIDs(t *testing.T) {
	a := newTestAssembler(t, PolicyLenient)
	idx := newTestIndex()

	rec, warnings, err := a.Assemble(payloadWith("Italian", "omnivore", "Saffron", 3), idx)
	require.NoError(t, err)

	ids, unbound, err := BindIngredientIDs(rec, idx, warnings)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, []string{"saffron"}, unbound)

	rec, warnings, err = a.Assemble(payloadWith("Italian", "omnivore", "Pork", 3), idx)
	require.NoError(t, err)

	ids, unbound, err = BindIngredientIDs(rec, idx, warnings)
	require.NoError(t, err)
	assert.Empty(t, unbound)
	// Identifiers pass through as opaque strings, leading zeros intact.
	assert.Equal(t, "000410", ids["pork"])
}

func TestBindIngredientIDsConsistencyFault(t *testing.T) {
	rec := &ValidatedRecipe{
		IngredientGroups: []IngredientGroup{
			{Component: "Main", Ingredients: []Ingredient{{Name: "ghost"}}},
		},
	}

	_, _, err := BindIngredientIDs(rec, pantry.NewIndex(), nil)

	var consistencyErr *ConsistencyError
	require.ErrorAs(t, err, &consistencyErr)
	assert.Equal(t, "ghost", consistencyErr.Name)
}
