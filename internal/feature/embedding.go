package feature

import (
	"fmt"
	"slices"

	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/model/entity"
	"github.com/trknhr/intently/internal/text"
	"github.com/trknhr/intently/internal/vectors"
)

// DefaultEntityThreshold applies to entities missing from a per-entity
// threshold map.
const DefaultEntityThreshold = 0.5

// Embedding matches words to entities by cosine similarity against the
// entity examples. A word equal to an example always matches with
// similarity 1.
type Embedding struct {
	table vectors.Table

	lexicon entity.Lexicon
	known   [][]string
	stop    text.StopWords
	fitted  bool
}

func NewEmbedding(table vectors.Table) *Embedding {
	return &Embedding{table: table}
}

func (e *Embedding) Fit(lexicon entity.Lexicon, stop text.StopWords) error {
	e.lexicon = copyLexicon(lexicon)
	e.known = make([][]string, len(e.lexicon))
	for i, row := range e.lexicon {
		for _, ex := range row.Examples {
			if e.table.Contains(ex) {
				e.known[i] = append(e.known[i], ex)
			}
		}
		if len(e.known[i]) == 0 {
			logger.Debug("entity %q has no examples in the vectors table", row.Entity)
		}
	}
	e.stop = stop
	e.fitted = true
	return nil
}

type thresholdFunc func(entity string) float64

func resolveThreshold(threshold any) (thresholdFunc, error) {
	switch v := threshold.(type) {
	case float64:
		return func(string) float64 { return v }, nil
	case float32:
		return func(string) float64 { return float64(v) }, nil
	case map[string]float64:
		return func(name string) float64 {
			if t, ok := v[name]; ok {
				return t
			}
			return DefaultEntityThreshold
		}, nil
	}
	return nil, fmt.Errorf("%w: threshold must be a float or a dict, got %T", entity.ErrInvalidConfig, threshold)
}

func (e *Embedding) GetFeatures(input string, threshold any) ([]entity.FeatureMatch, error) {
	thresholdFor, err := resolveThreshold(threshold)
	if err != nil {
		return nil, err
	}
	if !e.fitted {
		return nil, entity.ErrNotFitted
	}

	matches := []entity.FeatureMatch{}
	for _, word := range text.Normalize(input, e.stop) {
		for i, row := range e.lexicon {
			if slices.Contains(row.Examples, word) {
				matches = append(matches, entity.FeatureMatch{Word: word, Entity: row.Entity, Similarity: 1})
				continue
			}
			if len(e.known[i]) == 0 || !e.table.Contains(word) {
				continue
			}

			best, err := e.maxSimilarity(word, e.known[i])
			if err != nil {
				return nil, err
			}
			if best > thresholdFor(row.Entity) {
				matches = append(matches, entity.FeatureMatch{Word: word, Entity: row.Entity, Similarity: best})
			}
		}
	}
	return matches, nil
}

func (e *Embedding) maxSimilarity(word string, examples []string) (float64, error) {
	var best float64
	for j, ex := range examples {
		s, err := e.table.Similarity(word, ex)
		if err != nil {
			return 0, fmt.Errorf("similarity %q/%q: %w", word, ex, err)
		}
		if j == 0 || s > best {
			best = s
		}
	}
	return best, nil
}

func (e *Embedding) Snapshot() (entity.ExtractorSnapshot, error) {
	if !e.fitted {
		return entity.ExtractorSnapshot{}, entity.ErrNotFitted
	}
	return snapshot(KindEmbedding, e.lexicon, e.stop), nil
}
