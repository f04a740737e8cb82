package pipeline

import (
	"testing"

	"pantry-chef/internal/core/pantry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex() *pantry.Index {
	idx := pantry.NewIndex()
	idx.Rebuild([]pantry.Item{
		{ID: "000322", Name: "Avocado"},
		{ID: "000410", Name: "Pork"},
		{ID: "000517", Name: "Tomato"},
		{ID: "000623", Name: "Chicken Breast"},
	})
	return idx
}

func TestResolveExact(t *testing.T) {
	idx := newTestIndex()

	res := Resolve("Avocado", idx, DefaultFuzzyCutoff)
	assert.Equal(t, StrategyExact, res.Strategy)
	assert.Equal(t, "avocado", res.Name)

	id, ok := idx.IDFor(res.Name)
	require.True(t, ok)
	assert.Equal(t, "000322", id)
}

func TestResolveFuzzy(t *testing.T) {
	idx := newTestIndex()

	// "tomatoe" vs "tomato" has a Ratcliff/Obershelp ratio of about 0.92.
	res := Resolve("tomatoe", idx, DefaultFuzzyCutoff)
	assert.Equal(t, StrategyFuzzy, res.Strategy)
	assert.Equal(t, "tomato", res.Name)
}

func TestResolveSubstringBelowFuzzyCutoff(t *testing.T) {
	idx := newTestIndex()

	// "minced pork" vs "pork" scores about 0.53, below the cutoff, so the
	// containment tier picks it up instead.
	res := Resolve("minced pork", idx, DefaultFuzzyCutoff)
	assert.Equal(t, StrategySubstring, res.Strategy)
	assert.Equal(t, "pork", res.Name)
}

func TestResolveSubstringEitherDirection(t *testing.T) {
	idx := newTestIndex()

	res := Resolve("chicken", idx, 0.99)
	assert.Equal(t, StrategySubstring, res.Strategy)
	assert.Equal(t, "chicken breast", res.Name)
}

func TestResolveImportFallback(t *testing.T) {
	idx := newTestIndex()

	res := Resolve("  Dragonfruit ", idx, DefaultFuzzyCutoff)
	assert.Equal(t, StrategyImport, res.Strategy)
	assert.Equal(t, "dragonfruit", res.Name)

	_, ok := idx.IDFor(res.Name)
	assert.False(t, ok)
}

func TestResolveZeroCutoffUsesDefault(t *testing.T) {
	idx := newTestIndex()

	res := Resolve("minced pork", idx, 0)
	assert.Equal(t, StrategySubstring, res.Strategy)
	assert.Equal(t, "pork", res.Name)
}

func TestResolveEmptyIndex(t *testing.T) {
	idx := pantry.NewIndex()

	res := Resolve("anything", idx, DefaultFuzzyCutoff)
	assert.Equal(t, StrategyImport, res.Strategy)
	assert.Equal(t, "anything", res.Name)
}
