package classifier

import (
	"fmt"

	"github.com/trknhr/intently/internal/dataset"
	"github.com/trknhr/intently/internal/feature"
	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/model/entity"
	"github.com/trknhr/intently/internal/store"
	"github.com/trknhr/intently/internal/vectors"
	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is passed to the feature extractor when Predict is
// called with a nil threshold.
const DefaultThreshold = 0.2

// Classifier runs an intent engine and an optional feature extractor over
// a dataset. It is not safe to call Fit concurrently with anything else.
type Classifier struct {
	engine    entity.IntentEngine
	extractor entity.FeatureExtractor
	saver     store.Saver
	loader    func(path string) (*dataset.Dataset, error)
	table     vectors.Table

	intents []string
}

type Option func(*Classifier)

func WithFeatureExtractor(e entity.FeatureExtractor) Option {
	return func(c *Classifier) { c.extractor = e }
}

func WithSaver(s store.Saver) Option {
	return func(c *Classifier) { c.saver = s }
}

// WithLoader replaces dataset.Load as the source of training data.
func WithLoader(load func(path string) (*dataset.Dataset, error)) Option {
	return func(c *Classifier) { c.loader = load }
}

// WithVectors provides the embedding table to Load, which does not persist it.
func WithVectors(t vectors.Table) Option {
	return func(c *Classifier) { c.table = t }
}

func New(engine entity.IntentEngine, opts ...Option) (*Classifier, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: no engine provided", entity.ErrInvalidConfig)
	}
	c := &Classifier{engine: engine, loader: dataset.Load}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Classifier) Engine() entity.IntentEngine {
	return c.engine
}

// Intents lists the intents of the last fitted dataset in file order.
func (c *Classifier) Intents() []string {
	return c.intents
}

func (c *Classifier) Fit(path string) error {
	ds, err := c.loader(path)
	if err != nil {
		return err
	}
	return c.FitDataset(ds)
}

func (c *Classifier) FitDataset(ds *dataset.Dataset) error {
	if c.extractor != nil {
		if err := c.extractor.Fit(ds.Lexicon, c.engine.StopWords()); err != nil {
			return fmt.Errorf("failed to fit feature extractor: %w", err)
		}
	}

	texts, intents := entity.Examples(ds.Examples)
	if err := c.engine.Fit(texts, intents); err != nil {
		return fmt.Errorf("failed to fit engine: %w", err)
	}
	c.intents = ds.Intents
	logger.Debug("classifier fitted on %d examples, %d entities", len(ds.Examples), len(ds.Lexicon))
	return nil
}

func (c *Classifier) Predict(text string, threshold any) (entity.PredictionResult, error) {
	results, err := c.MultiplePredict([]string{text}, threshold)
	if err != nil {
		return entity.PredictionResult{}, err
	}
	return results[0], nil
}

// MultiplePredict returns one result per text, in input order. Features are
// extracted concurrently; any extraction error fails the whole call.
func (c *Classifier) MultiplePredict(texts []string, threshold any) ([]entity.PredictionResult, error) {
	if threshold == nil {
		threshold = DefaultThreshold
	}

	intents, scores, err := c.engine.Predict(texts)
	if err != nil {
		return nil, err
	}

	results := make([]entity.PredictionResult, len(texts))
	for i, t := range texts {
		results[i] = entity.PredictionResult{
			Text:        t,
			Intent:      intents[i],
			Probability: scores[i],
			Kind:        c.engine.ScoreKind(),
		}
	}
	if c.extractor == nil {
		return results, nil
	}

	var g errgroup.Group
	for i := range results {
		i := i
		g.Go(func() error {
			features, err := c.extractor.GetFeatures(results[i].Text, threshold)
			if err != nil {
				return fmt.Errorf("failed to extract features of %q: %w", results[i].Text, err)
			}
			results[i].Features = features
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Classifier) Snapshot() (*entity.Snapshot, error) {
	engine, err := c.engine.Snapshot()
	if err != nil {
		return nil, err
	}
	snap := &entity.Snapshot{Version: entity.SnapshotVersion, Engine: engine}
	if c.extractor != nil {
		ext, err := c.extractor.Snapshot()
		if err != nil {
			return nil, err
		}
		snap.Extractor = &ext
	}
	return snap, nil
}

func (c *Classifier) Save(path string) error {
	if c.saver == nil {
		return fmt.Errorf("%w: no saver provided", entity.ErrInvalidConfig)
	}
	snap, err := c.Snapshot()
	if err != nil {
		return err
	}
	return c.saver.Save(snap, path)
}

// Load restores a fitted classifier saved by Save. Embedding based engines
// and extractors need WithVectors.
func Load(saver store.Saver, path string, opts ...Option) (*Classifier, error) {
	if saver == nil {
		return nil, fmt.Errorf("%w: no saver provided", entity.ErrInvalidConfig)
	}
	snap, err := saver.Load(path)
	if err != nil {
		return nil, err
	}

	c := &Classifier{saver: saver, loader: dataset.Load}
	for _, opt := range opts {
		opt(c)
	}

	c.engine, err = restoreEngine(snap.Engine, c.table)
	if err != nil {
		return nil, err
	}
	if snap.Extractor != nil {
		c.extractor, err = feature.Restore(*snap.Extractor, c.table)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("loaded %s classifier from %s", snap.Engine.Kind, path)
	return c, nil
}
