package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/intently/internal/dataset"
	"github.com/trknhr/intently/internal/model/entity"
)

const sample = `{
	"version": 2,
	"intents": {
		"search": ["quiero aprender sobre python", "busca lo ultimo de javascript"],
		"small_talk": ["hola como estas"],
		"meme": ["enviame un meme"]
	},
	"entities": {
		"timing": ["ultimo", "reciente"],
		"language": ["python", "javascript"]
	}
}`

func TestParse_KeepsOrder(t *testing.T) {
	ds, err := dataset.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"search", "small_talk", "meme"}, ds.Intents)
	assert.Equal(t, []entity.TrainingExample{
		{Text: "quiero aprender sobre python", Intent: "search"},
		{Text: "busca lo ultimo de javascript", Intent: "search"},
		{Text: "hola como estas", Intent: "small_talk"},
		{Text: "enviame un meme", Intent: "meme"},
	}, ds.Examples)
	assert.Equal(t, entity.Lexicon{
		{Entity: "timing", Examples: []string{"ultimo", "reciente"}},
		{Entity: "language", Examples: []string{"python", "javascript"}},
	}, ds.Lexicon)
}

func TestParse_NoEntities(t *testing.T) {
	ds, err := dataset.Parse(strings.NewReader(`{"intents": {"greet": ["hi"]}, "entities": null}`))
	require.NoError(t, err)
	assert.Len(t, ds.Examples, 1)
	assert.Empty(t, ds.Lexicon)
}

func TestParse_Errors(t *testing.T) {
	_, err := dataset.Parse(strings.NewReader(`{"intents": {"greet": "hi"}}`))
	assert.Error(t, err)

	_, err = dataset.Parse(strings.NewReader(`{"intents": {}}`))
	assert.ErrorIs(t, err, entity.ErrInvalidConfig)

	_, err = dataset.Parse(strings.NewReader(`{"intents": {"greet": ["hi"]`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	ds, err := dataset.Load(path)
	require.NoError(t, err)
	assert.Len(t, ds.Examples, 4)

	_, err = dataset.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
