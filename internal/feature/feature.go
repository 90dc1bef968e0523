package feature

import (
	"fmt"
	"slices"

	"github.com/trknhr/intently/internal/model/entity"
	"github.com/trknhr/intently/internal/text"
	"github.com/trknhr/intently/internal/vectors"
)

const (
	KindNaive     = "naive"
	KindEmbedding = "embedding"
)

// Restore rebuilds a fitted extractor. table is only used by embedding
// extractors and may be nil otherwise.
func Restore(snap entity.ExtractorSnapshot, table vectors.Table) (entity.FeatureExtractor, error) {
	var ext entity.FeatureExtractor
	switch snap.Kind {
	case KindNaive:
		ext = NewNaive()
	case KindEmbedding:
		if table == nil {
			return nil, fmt.Errorf("%w: embedding extractor needs a vectors table", entity.ErrInvalidConfig)
		}
		ext = NewEmbedding(table)
	default:
		return nil, fmt.Errorf("unknown extractor kind %q", snap.Kind)
	}
	if err := ext.Fit(snap.Lexicon, text.NewStopWords(snap.Language, snap.StopWords...)); err != nil {
		return nil, err
	}
	return ext, nil
}

func snapshot(kind string, lexicon entity.Lexicon, stop text.StopWords) entity.ExtractorSnapshot {
	return entity.ExtractorSnapshot{
		Kind:      kind,
		Lexicon:   lexicon,
		StopWords: stop.Extra(),
		Language:  stop.Language(),
	}
}

func copyLexicon(lexicon entity.Lexicon) entity.Lexicon {
	out := make(entity.Lexicon, len(lexicon))
	for i, row := range lexicon {
		out[i] = entity.EntityExamples{
			Entity:   row.Entity,
			Examples: slices.Clone(row.Examples),
		}
	}
	return out
}
