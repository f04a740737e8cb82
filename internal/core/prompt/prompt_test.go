package prompt

import (
	"testing"

	"pantry-chef/internal/core/persona"
	"pantry-chef/internal/core/vocab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer(t *testing.T) (*Composer, persona.Chef) {
	t.Helper()
	v, err := vocab.Load()
	require.NoError(t, err)
	r, err := persona.Load()
	require.NoError(t, err)
	return NewComposer(v), r.Select("gourmet")
}

func TestGenerationPrompt(t *testing.T) {
	c, chef := newTestComposer(t)

	pantryJSON := `[{"id":"000322","n":"Avocado","c":"produce","u":"pcs","t":[]}]`
	p := c.Generation("something quick with avocado", pantryJSON, chef)

	assert.Contains(t, p, `USER REQUEST: "something quick with avocado"`)
	assert.Contains(t, p, pantryJSON)
	assert.Contains(t, p, "ROLE:")
	assert.Contains(t, p, "Valid Cuisines:")
	assert.Contains(t, p, "Italian")
	assert.Contains(t, p, "CLEANUP FACTOR GUIDE (1-5):")
	assert.Contains(t, p, `"cleanup_factor": 1`)
}

func TestVideoAnalysisPrompt(t *testing.T) {
	c, chef := newTestComposer(t)

	p := c.VideoAnalysis("pasta night", "[]", chef)

	assert.Contains(t, p, "VIDEO ANALYSIS REQUEST.")
	assert.Contains(t, p, `Caption: "pasta night"`)
	assert.Contains(t, p, "YOU MUST ESTIMATE AMOUNTS")
}

func TestWebImportPrompt(t *testing.T) {
	c, _ := newTestComposer(t)

	raw := "Grandma's famous stew... 2 cups of broth..."
	p := c.WebImport(raw, "[]")

	assert.Contains(t, p, "SILENTLY SWAP")
	assert.Contains(t, p, "WEBPAGE TEXT:")
	assert.Contains(t, p, raw)
}

func TestPromptsDeterministic(t *testing.T) {
	c, chef := newTestComposer(t)

	first := c.Generation("soup", "[]", chef)
	second := c.Generation("soup", "[]", chef)
	assert.Equal(t, first, second)
}
