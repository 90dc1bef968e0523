package cmd_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/intently/cmd"
	"github.com/trknhr/intently/internal/model/entity"
)

const trainSet = `{
	"intents": {
		"small_talk": ["hola como estas", "hola que tal", "buenos dias, como te va?", "hola, como te encuentras hoy", "que tal tu dia"],
		"search": ["quiero aprender sobre python", "busca lo último de javascript", "quiero leer sobre angular", "aprender programacion en python", "articulos sobre unity"],
		"meme": ["describeme usando un meme", "enviame un meme", "un meme gracioso por favor", "hazme reir con un meme"]
	},
	"entities": {
		"timing": ["ultimo", "reciente"]
	}
}`

const testSet = `{
	"intents": {
		"small_talk": ["Hola como te encuentras?"],
		"search": ["Quiero aprender sobre lo último de python"],
		"meme": ["describeme usando un meme"]
	}
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTrainPredictEval(t *testing.T) {
	t.Setenv("INTENTLY_LOG_LEVEL", "none")
	dir := t.TempDir()
	train := writeFile(t, dir, "train.json", trainSet)
	test := writeFile(t, dir, "test.json", testSet)
	model := filepath.Join(dir, "model.json")

	out, err := run(t, "", "train", train, "-o", model)
	require.NoError(t, err)
	assert.Contains(t, out, "trained logistic engine on 3 intents")

	out, err = run(t, "", "predict", "-m", model, "quiero el ultimo blogpost", "enviame un meme")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first entity.PredictionResult
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "quiero el ultimo blogpost", first.Text)
	assert.Equal(t, entity.ScoreProbability, first.Kind)
	assert.Equal(t, []entity.FeatureMatch{{Word: "ultimo", Entity: "timing", Similarity: 1}}, first.Features)

	var second entity.PredictionResult
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "meme", second.Intent)

	out, err = run(t, "hola que tal\n\n", "predict", "-m", model)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"intent":"small_talk"`)

	out, err = run(t, "", "eval", "-m", model, test)
	require.NoError(t, err)
	assert.Contains(t, out, "accuracy 3/3")
}

func TestCompare(t *testing.T) {
	t.Setenv("INTENTLY_LOG_LEVEL", "none")
	dir := t.TempDir()
	train := writeFile(t, dir, "train.json", trainSet)
	test := writeFile(t, dir, "test.json", testSet)

	out, err := run(t, "", "compare", train, test, "--engines", "logistic,sgd")
	require.NoError(t, err)
	assert.Contains(t, out, "logistic: accuracy 3/3")
	assert.Contains(t, out, "sgd: accuracy 3/3")

	_, err = run(t, "", "compare", train, test, "--engines", "bayes")
	assert.Error(t, err)
}

func TestTrain_SQLStoreSkipsUnchangedDataset(t *testing.T) {
	t.Setenv("INTENTLY_LOG_LEVEL", "none")
	dir := t.TempDir()
	t.Setenv("INTENTLY_STORE", "sql")
	t.Setenv("INTENTLY_DB_PATH", filepath.Join(dir, "intently.db"))
	train := writeFile(t, dir, "train.json", trainSet)

	out, err := run(t, "", "train", train, "-o", "intents")
	require.NoError(t, err)
	assert.Contains(t, out, "saved to intents")

	out, err = run(t, "", "train", train, "-o", "intents")
	require.NoError(t, err)
	assert.Contains(t, out, "intents is up to date")

	out, err = run(t, "", "train", train, "-o", "intents", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "saved to intents")

	out, err = run(t, "", "predict", "-m", "intents", "enviame un meme")
	require.NoError(t, err)
	assert.Contains(t, out, `"intent":"meme"`)
}

func TestVectorsImportAndWordvec(t *testing.T) {
	t.Setenv("INTENTLY_LOG_LEVEL", "none")
	dir := t.TempDir()
	t.Setenv("INTENTLY_STORE", "sql")
	t.Setenv("INTENTLY_DB_PATH", filepath.Join(dir, "intently.db"))

	glove := writeFile(t, dir, "tiny.txt", "hola 1 0 0\nque 0.9 0.1 0\ntal 0.8 0.2 0\nmeme 0 0 1\nenviame 0 0.1 0.9\n")
	train := writeFile(t, dir, "train.json", `{"intents": {"greet": ["hola que tal"], "meme": ["enviame un meme"]}}`)

	out, err := run(t, "", "vectors", "import", "tiny", glove)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 5 vectors of dimension 3 as tiny")

	config := writeFile(t, dir, "intently.yaml", `
engine: wordvec
extractor: none
vectors:
  name: tiny
  from_db: true
`)
	out, err = run(t, "", "-c", config, "train", train, "-o", "wordvec")
	require.NoError(t, err)
	assert.Contains(t, out, "trained wordvec engine")

	out, err = run(t, "", "-c", config, "predict", "-m", "wordvec", "hola", "meme")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"intent":"greet"`)
	assert.Contains(t, lines[1], `"intent":"meme"`)
	assert.Contains(t, lines[1], `"score_kind":"distance"`)
}

func TestVectorsImportFromOllama(t *testing.T) {
	t.Setenv("INTENTLY_LOG_LEVEL", "none")
	dir := t.TempDir()
	t.Setenv("INTENTLY_DB_PATH", filepath.Join(dir, "intently.db"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string][]float32{"embedding": {float32(len(body["prompt"])), 1}})
	}))
	defer server.Close()
	t.Setenv("INTENTLY_OLLAMA_URL", server.URL)

	train := writeFile(t, dir, "train.json", `{"intents": {"greet": ["hola amigo", "hola"]}, "entities": {"who": ["Amigo"]}}`)

	out, err := run(t, "", "vectors", "import", "ollama-words", "--from-ollama", train)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 vectors of dimension 2 as ollama-words")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("INTENTLY_LOG_LEVEL", "none")
	t.Setenv("INTENTLY_ENGINE", "bayes")

	_, err := run(t, "", "predict", "hola")
	assert.Error(t, err)
}
