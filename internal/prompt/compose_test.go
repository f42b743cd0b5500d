package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimiagar/backend/internal/models"
)

func TestComposeSubstitutesText(t *testing.T) {
	spell := models.Spell{ID: "X", PromptTemplate: "Prefix: {{text}}"}

	out, err := Compose("hello", spell, "")
	require.NoError(t, err)
	assert.Equal(t, "Prefix: hello", out)
}

func TestComposeAppendsWhenNoTextToken(t *testing.T) {
	spell := models.Spell{ID: "X", PromptTemplate: "Do X"}

	out, err := Compose("hello", spell, "")
	require.NoError(t, err)
	assert.Equal(t, "Do X\n\nhello", out)
}

func TestComposeFreeFormRequiresInstruction(t *testing.T) {
	spell := models.Spell{ID: models.FreeFormSpellID, PromptTemplate: "{{prompt}}:\n\n{{text}}"}

	_, err := Compose("hello", spell, "")
	assert.ErrorIs(t, err, ErrInstructionRequired)
}

func TestComposeFreeForm(t *testing.T) {
	spell := models.Spell{ID: models.FreeFormSpellID, PromptTemplate: "{{prompt}}:\n\n{{text}}"}

	out, err := Compose("some text", spell, "rewrite this as satire")
	require.NoError(t, err)
	assert.Equal(t, "rewrite this as satire:\n\nsome text", out)
}

func TestComposeReplacesFirstOccurrenceOnly(t *testing.T) {
	spell := models.Spell{ID: "X", PromptTemplate: "{{text}} and again {{text}}"}

	out, err := Compose("A", spell, "")
	require.NoError(t, err)
	assert.Equal(t, "A and again {{text}}", out)
}

func TestComposeIsDeterministic(t *testing.T) {
	spell := models.Spell{ID: models.FreeFormSpellID, PromptTemplate: "{{prompt}}:\n\n{{text}}"}

	first, err := Compose("text", spell, "instruction")
	require.NoError(t, err)
	second, err := Compose("text", spell, "instruction")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
