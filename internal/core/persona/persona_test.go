package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPersonas(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	ids := r.IDs()
	assert.NotEmpty(t, ids)
	assert.Contains(t, ids, FallbackChefID)
}

func TestSelectFallbackChain(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	known := r.Select("weeknight_dash")
	assert.Equal(t, "weeknight_dash", known.ID)

	unknown := r.Select("no-such-chef")
	assert.Equal(t, FallbackChefID, unknown.ID)

	blank := r.Select("")
	assert.Equal(t, FallbackChefID, blank.ID)
}

func TestBuildPromptDeterministic(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	chef := r.Select("gourmet")
	first := BuildPrompt(chef)
	second := BuildPrompt(chef)
	assert.Equal(t, first, second)
}

func TestBuildPromptSections(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	block := BuildPrompt(r.Select("plant_forward"))
	assert.Contains(t, block, "ROLE:")
	assert.Contains(t, block, "PHILOSOPHY & CONSTRAINTS:")
	assert.Contains(t, block, "DIET PREFERENCES:")
	assert.Contains(t, block, "COOKING STYLE:")
	assert.Contains(t, block, "INGREDIENT LOGIC:")
	assert.Contains(t, block, "INSTRUCTION STYLE:")
	assert.Contains(t, block, "/ 5")
}
