package entity

import "github.com/trknhr/intently/internal/text"

type TrainingExample struct {
	Text   string `json:"text"`
	Intent string `json:"intent"`
}

// EntityExamples is one lexicon row. Lexicon keeps the dataset order so that
// feature matches come out in a stable order.
type EntityExamples struct {
	Entity   string   `json:"entity"`
	Examples []string `json:"examples"`
}

type Lexicon []EntityExamples

type FeatureMatch struct {
	Word       string  `json:"word"`
	Entity     string  `json:"entity"`
	Similarity float64 `json:"similarity"`
}

// ScoreKind tells how the second value returned by an engine must be read.
type ScoreKind string

const (
	// ScoreProbability is bounded to (0,1], higher is more confident.
	ScoreProbability ScoreKind = "probability"
	// ScoreDistance is unbounded, lower is more confident.
	ScoreDistance ScoreKind = "distance"
)

type PredictionResult struct {
	Text        string         `json:"text"`
	Intent      string         `json:"intent"`
	Probability float64        `json:"probability"`
	Kind        ScoreKind      `json:"score_kind"`
	Features    []FeatureMatch `json:"features,omitempty"`
}

// IntentEngine maps texts to intents. Predict returns one intent and one
// score per input, in input order; how to read the score is given by ScoreKind.
type IntentEngine interface {
	Fit(texts, intents []string) error
	Predict(texts []string) ([]string, []float64, error)
	ScoreKind() ScoreKind
	StopWords() text.StopWords
	Snapshot() (EngineSnapshot, error)
}

// FeatureExtractor scores normalized words of a text against a lexicon.
// The accepted threshold types depend on the implementation.
type FeatureExtractor interface {
	Fit(lexicon Lexicon, stop text.StopWords) error
	GetFeatures(input string, threshold any) ([]FeatureMatch, error)
	Snapshot() (ExtractorSnapshot, error)
}

// Examples flattens texts and intents into two aligned slices.
func Examples(examples []TrainingExample) (texts, intents []string) {
	texts = make([]string, len(examples))
	intents = make([]string, len(examples))
	for i, e := range examples {
		texts[i] = e.Text
		intents[i] = e.Intent
	}
	return texts, intents
}
