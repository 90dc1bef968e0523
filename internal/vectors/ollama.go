package vectors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/trknhr/intently/internal/logger"
)

type Embedder interface {
	Embed(text string) ([]float32, error)
}

// OllamaClient fetches embeddings from an Ollama server.
type OllamaClient struct {
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewOllamaClient(model string) *OllamaClient {
	return &OllamaClient{
		Model:   model,
		BaseURL: "http://localhost:11434",
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *OllamaClient) Embed(text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reqBody, err := jsoniter.Marshal(map[string]string{
		"model":  c.Model,
		"prompt": text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/embeddings", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read embed response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embed request returned %s: %s", resp.Status, body)
	}

	var parsed struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := jsoniter.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse embed response: %w", err)
	}
	return parsed.Embedding, nil
}

// FromEmbedder builds a table for words. Words that fail to embed are
// skipped and their errors joined.
func FromEmbedder(e Embedder, words []string) (*KeyedVectors, error) {
	kv := NewKeyedVectors(0)
	var allErr error
	for _, w := range words {
		if kv.Contains(w) {
			continue
		}
		emb, err := e.Embed(w)
		if err != nil {
			logger.Debug("failed to embed %q: %v", w, err)
			allErr = errors.Join(allErr, err)
			continue
		}
		vec := make([]float64, len(emb))
		for i, v := range emb {
			vec[i] = float64(v)
		}
		if err := kv.Add(w, vec); err != nil {
			allErr = errors.Join(allErr, err)
		}
	}
	return kv, allErr
}
