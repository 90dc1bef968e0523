package entity

import "encoding/json"

// Snapshot is the serializable form of a fitted classifier. Savers treat
// State fields as opaque.
type Snapshot struct {
	Version   int                `json:"version"`
	Engine    EngineSnapshot     `json:"engine"`
	Extractor *ExtractorSnapshot `json:"extractor,omitempty"`
}

type EngineSnapshot struct {
	Kind     string          `json:"kind"`
	Language string          `json:"language"`
	State    json.RawMessage `json:"state,omitempty"`
}

type ExtractorSnapshot struct {
	Kind      string   `json:"kind"`
	Lexicon   Lexicon  `json:"lexicon"`
	StopWords []string `json:"stopwords,omitempty"`
	Language  string   `json:"language,omitempty"`
}

const SnapshotVersion = 1
