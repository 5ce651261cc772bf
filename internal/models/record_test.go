package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libretranslate/internal/language"
	"libretranslate/internal/translator"
)

func TestNewRecord(t *testing.T) {
	r := NewRecord(&translator.Translator{
		Source: language.Portuguese,
		Target: language.English,
		Input:  "Olá Mundo!",
		Output: "Hello world!",
	}, "http://localhost:5000/translate")

	assert.Empty(t, r.ID)
	assert.Equal(t, "pt->en", r.Pair())
	assert.Equal(t, "Hello world!", r.Output)
	assert.False(t, r.CreatedAt.IsZero())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"source":"pt"`)
	assert.Contains(t, string(data), `"target":"en"`)
}
