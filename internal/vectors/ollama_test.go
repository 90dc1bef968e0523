package vectors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/intently/internal/vectors"
)

func TestOllamaClient_Embed(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body["model"] != "test-embed-model" || body["prompt"] != "hola" {
			t.Errorf("unexpected body: %+v", body)
		}

		json.NewEncoder(w).Encode(map[string][]float32{"embedding": {0.1, 0.2, 0.3}})
	}))
	defer mockServer.Close()

	client := &vectors.OllamaClient{
		Model:   "test-embed-model",
		BaseURL: mockServer.URL,
		Client:  mockServer.Client(),
	}

	emb, err := client.Embed("hola")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, emb)
}

func TestOllamaClient_ErrorStatus(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer mockServer.Close()

	client := &vectors.OllamaClient{Model: "x", BaseURL: mockServer.URL, Client: mockServer.Client()}
	_, err := client.Embed("hola")
	assert.Error(t, err)
}

type MockEmbedder struct {
	EmbedFunc func(text string) ([]float32, error)
}

func (m *MockEmbedder) Embed(text string) ([]float32, error) {
	return m.EmbedFunc(text)
}

func TestFromEmbedder(t *testing.T) {
	calls := 0
	embedder := &MockEmbedder{EmbedFunc: func(text string) ([]float32, error) {
		calls++
		if text == "broken" {
			return nil, errors.New("boom")
		}
		return []float32{float32(len(text)), 1}, nil
	}}

	kv, err := vectors.FromEmbedder(embedder, []string{"hola", "broken", "hola", "python"})

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []string{"hola", "python"}, kv.Words())
}
