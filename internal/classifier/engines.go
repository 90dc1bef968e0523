package classifier

import (
	"fmt"
	"strings"

	"github.com/trknhr/intently/internal/feature"
	"github.com/trknhr/intently/internal/model/entity"
	"github.com/trknhr/intently/internal/model/linear"
	"github.com/trknhr/intently/internal/model/vectorize"
	"github.com/trknhr/intently/internal/model/vectorizing"
	"github.com/trknhr/intently/internal/model/wordvec"
	"github.com/trknhr/intently/internal/vectors"
)

const (
	EngineLogistic = "logistic"
	EngineSGD      = "sgd"
	EngineWordvec  = "wordvec"
)

// EngineNames lists the names accepted by NewEngine.
var EngineNames = []string{EngineLogistic, EngineSGD, EngineWordvec}

// DefaultEngine is the engine used when a caller has no preference:
// term counts with logistic regression.
func DefaultEngine(language string) entity.IntentEngine {
	return vectorizing.NewLogisticEngine(language)
}

// NewEngine builds an unfitted engine by name. table is required by the
// wordvec engine only.
func NewEngine(name, language string, table vectors.Table) (entity.IntentEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EngineLogistic, "":
		return vectorizing.NewLogisticEngine(language), nil
	case EngineSGD:
		return vectorizing.NewSGDEngine(language), nil
	case EngineWordvec:
		if table == nil {
			return nil, fmt.Errorf("%w: engine %q needs a vectors table", entity.ErrInvalidConfig, name)
		}
		return wordvec.New(language, table), nil
	}
	return nil, fmt.Errorf("%w: unknown engine %q", entity.ErrInvalidConfig, name)
}

// NewWeightedEngine is NewEngine for the vectorizing engines with the
// term weighting of the preset replaced by w.
func NewWeightedEngine(name, language string, w vectorize.Weighting) (entity.IntentEngine, error) {
	var factory linear.Factory
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EngineLogistic, "":
		factory = linear.LogisticFactory
	case EngineSGD:
		factory = linear.CalibratedSVMFactory
	default:
		return nil, fmt.Errorf("%w: weighting does not apply to engine %q", entity.ErrInvalidConfig, name)
	}
	return vectorizing.New(vectorizing.Options{Language: language, Weighting: w, Classifier: factory}), nil
}

// NewExtractor builds an unfitted feature extractor by name. "" and "none"
// return a nil extractor.
func NewExtractor(name string, table vectors.Table) (entity.FeatureExtractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case feature.KindNaive:
		return feature.NewNaive(), nil
	case feature.KindEmbedding:
		if table == nil {
			return nil, fmt.Errorf("%w: extractor %q needs a vectors table", entity.ErrInvalidConfig, name)
		}
		return feature.NewEmbedding(table), nil
	}
	return nil, fmt.Errorf("%w: unknown extractor %q", entity.ErrInvalidConfig, name)
}

func restoreEngine(snap entity.EngineSnapshot, table vectors.Table) (entity.IntentEngine, error) {
	switch snap.Kind {
	case vectorizing.Kind:
		return vectorizing.Restore(snap)
	case wordvec.Kind:
		if table == nil {
			return nil, fmt.Errorf("%w: a vectors table is needed to load a %s model", entity.ErrInvalidConfig, snap.Kind)
		}
		return wordvec.Restore(snap, table)
	}
	return nil, fmt.Errorf("unknown engine kind %q", snap.Kind)
}
