package feature

import (
	"strings"

	"github.com/trknhr/intently/internal/model/entity"
	"github.com/trknhr/intently/internal/text"
)

// Naive matches a word when one of an entity's examples is a substring of
// it. The threshold is ignored and every match has similarity 1.
type Naive struct {
	lexicon entity.Lexicon
	lowered [][]string
	stop    text.StopWords
	fitted  bool
}

func NewNaive() *Naive {
	return &Naive{}
}

func (n *Naive) Fit(lexicon entity.Lexicon, stop text.StopWords) error {
	n.lexicon = copyLexicon(lexicon)
	n.lowered = make([][]string, len(n.lexicon))
	for i, row := range n.lexicon {
		n.lowered[i] = make([]string, len(row.Examples))
		for j, ex := range row.Examples {
			n.lowered[i][j] = strings.ToLower(ex)
		}
	}
	n.stop = stop
	n.fitted = true
	return nil
}

func (n *Naive) GetFeatures(input string, _ any) ([]entity.FeatureMatch, error) {
	if !n.fitted {
		return nil, entity.ErrNotFitted
	}

	matches := []entity.FeatureMatch{}
	for _, word := range text.Normalize(input, n.stop) {
		for i, row := range n.lexicon {
			for _, ex := range n.lowered[i] {
				if strings.Contains(word, ex) {
					matches = append(matches, entity.FeatureMatch{Word: word, Entity: row.Entity, Similarity: 1})
				}
			}
		}
	}
	return matches, nil
}

func (n *Naive) Snapshot() (entity.ExtractorSnapshot, error) {
	if !n.fitted {
		return entity.ExtractorSnapshot{}, entity.ErrNotFitted
	}
	return snapshot(KindNaive, n.lexicon, n.stop), nil
}
