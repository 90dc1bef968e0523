package wordvec

import (
	"fmt"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/model/entity"
	"github.com/trknhr/intently/internal/text"
	"github.com/trknhr/intently/internal/vectors"
)

const Kind = "wordvec"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type intentExamples struct {
	Intent   string   `json:"intent"`
	Examples []string `json:"examples"`
}

// Engine predicts the intent of the training example closest to the input
// by word mover's distance. Scores are distances: lower is closer.
type Engine struct {
	language string
	table    vectors.Table

	intents []intentExamples
	tokens  [][][]string
}

func New(language string, table vectors.Table) *Engine {
	return &Engine{language: language, table: table}
}

func (e *Engine) StopWords() text.StopWords {
	return text.NewStopWords(e.language)
}

func (e *Engine) ScoreKind() entity.ScoreKind {
	return entity.ScoreDistance
}

func split(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// Fit groups the examples by intent in first-seen order.
func (e *Engine) Fit(texts, intents []string) error {
	if len(texts) != len(intents) {
		return fmt.Errorf("got %d texts and %d intents", len(texts), len(intents))
	}

	index := make(map[string]int)
	var grouped []intentExamples
	for i, intent := range intents {
		j, ok := index[intent]
		if !ok {
			j = len(grouped)
			index[intent] = j
			grouped = append(grouped, intentExamples{Intent: intent})
		}
		grouped[j].Examples = append(grouped[j].Examples, texts[i])
	}

	e.setExamples(grouped)
	logger.Debug("wordvec engine fitted: %d examples, %d intents", len(texts), len(grouped))
	return nil
}

func (e *Engine) setExamples(grouped []intentExamples) {
	tokens := make([][][]string, len(grouped))
	for i, g := range grouped {
		tokens[i] = make([][]string, len(g.Examples))
		for j, ex := range g.Examples {
			tokens[i][j] = split(ex)
		}
	}
	e.intents, e.tokens = grouped, tokens
}

func (e *Engine) Predict(texts []string) ([]string, []float64, error) {
	if len(e.intents) == 0 {
		return nil, nil, entity.ErrNotFitted
	}
	if e.table == nil {
		return nil, nil, fmt.Errorf("%w: no embedding table", entity.ErrInvalidConfig)
	}

	intents := make([]string, len(texts))
	distances := make([]float64, len(texts))
	for i, t := range texts {
		words := split(t)
		best, bestDist := e.intents[0].Intent, math.Inf(1)
		for j, g := range e.intents {
			for _, ex := range e.tokens[j] {
				if d := e.table.Distance(words, ex); d < bestDist {
					best, bestDist = g.Intent, d
				}
			}
		}
		intents[i], distances[i] = best, bestDist
	}
	return intents, distances, nil
}

func (e *Engine) Snapshot() (entity.EngineSnapshot, error) {
	if len(e.intents) == 0 {
		return entity.EngineSnapshot{}, entity.ErrNotFitted
	}
	raw, err := json.Marshal(e.intents)
	if err != nil {
		return entity.EngineSnapshot{}, fmt.Errorf("failed to marshal engine state: %w", err)
	}
	return entity.EngineSnapshot{Kind: Kind, Language: e.language, State: raw}, nil
}

// Restore rebuilds a fitted engine. The table is not part of the snapshot.
func Restore(snap entity.EngineSnapshot, table vectors.Table) (*Engine, error) {
	if snap.Kind != Kind {
		return nil, fmt.Errorf("snapshot kind %q is not %q", snap.Kind, Kind)
	}
	var grouped []intentExamples
	if err := json.Unmarshal(snap.State, &grouped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engine state: %w", err)
	}
	e := New(snap.Language, table)
	e.setExamples(grouped)
	return e, nil
}
