package vectorizing

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/model/entity"
	"github.com/trknhr/intently/internal/model/linear"
	"github.com/trknhr/intently/internal/model/vectorize"
	"github.com/trknhr/intently/internal/text"
)

const Kind = "vectorizing"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Options struct {
	Language       string
	ExtraStopWords []string
	Weighting      vectorize.Weighting
	Classifier     linear.Factory
}

// Engine turns texts into bag-of-words vectors and classifies them with a
// linear model. Vocabulary and model are frozen by Fit.
type Engine struct {
	opts      Options
	tokenizer *text.Tokenizer

	space *vectorize.Space
	clf   linear.Classifier
}

func New(opts Options) *Engine {
	if opts.Weighting == "" {
		opts.Weighting = vectorize.Counts
	}
	if opts.Classifier == nil {
		opts.Classifier = linear.LogisticFactory
	}
	return &Engine{
		opts:      opts,
		tokenizer: text.NewTokenizer(text.ForLanguage(opts.Language, opts.ExtraStopWords...)),
	}
}

// NewLogisticEngine uses raw term counts and logistic regression.
func NewLogisticEngine(language string) *Engine {
	return New(Options{Language: language, Weighting: vectorize.Counts, Classifier: linear.LogisticFactory})
}

// NewSGDEngine uses TF-IDF weights and a calibrated linear SVM.
func NewSGDEngine(language string) *Engine {
	return New(Options{Language: language, Weighting: vectorize.TFIDF, Classifier: linear.CalibratedSVMFactory})
}

func (e *Engine) StopWords() text.StopWords {
	return e.tokenizer.StopWords()
}

func (e *Engine) ScoreKind() entity.ScoreKind {
	return entity.ScoreProbability
}

func (e *Engine) analyze(s string) []string {
	tokens := e.tokenizer.Tokenize(strings.ToLower(s))
	stop := e.tokenizer.StopWords()
	out := tokens[:0]
	for _, tok := range tokens {
		if stop.Contains(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func (e *Engine) Fit(texts, intents []string) error {
	if len(texts) != len(intents) {
		return fmt.Errorf("got %d texts and %d intents", len(texts), len(intents))
	}

	docs := make([][]string, len(texts))
	for i, t := range texts {
		docs[i] = e.analyze(t)
	}
	space := vectorize.Fit(docs, e.opts.Weighting)

	clf := e.opts.Classifier()
	if err := clf.Fit(space.TransformAll(docs), intents); err != nil {
		return fmt.Errorf("failed to fit classifier: %w", err)
	}

	e.space, e.clf = space, clf
	logger.Debug("vectorizing engine fitted: %d examples, %d terms, %d intents", len(texts), space.Dim(), len(clf.Classes()))
	return nil
}

func (e *Engine) Predict(texts []string) ([]string, []float64, error) {
	if e.clf == nil {
		return nil, nil, entity.ErrNotFitted
	}

	intents := make([]string, len(texts))
	probabilities := make([]float64, len(texts))
	classes := e.clf.Classes()
	for i, t := range texts {
		proba := e.clf.PredictProba(e.space.Transform(e.analyze(t)))
		best := linear.Argmax(proba)
		intents[i] = classes[best]
		probabilities[i] = proba[best]
	}
	return intents, probabilities, nil
}

type state struct {
	Weighting      vectorize.Weighting `json:"weighting"`
	Terms          []string            `json:"terms"`
	IDF            []float64           `json:"idf,omitempty"`
	ExtraStopWords []string            `json:"extra_stopwords,omitempty"`
	Classifier     linear.State        `json:"classifier"`
}

func (e *Engine) Snapshot() (entity.EngineSnapshot, error) {
	if e.clf == nil {
		return entity.EngineSnapshot{}, entity.ErrNotFitted
	}
	raw, err := json.Marshal(state{
		Weighting:      e.space.Weighting,
		Terms:          e.space.Terms,
		IDF:            e.space.IDF,
		ExtraStopWords: e.opts.ExtraStopWords,
		Classifier:     e.clf.State(),
	})
	if err != nil {
		return entity.EngineSnapshot{}, fmt.Errorf("failed to marshal engine state: %w", err)
	}
	return entity.EngineSnapshot{Kind: Kind, Language: e.opts.Language, State: raw}, nil
}

// Restore rebuilds a fitted engine from a snapshot.
func Restore(snap entity.EngineSnapshot) (*Engine, error) {
	if snap.Kind != Kind {
		return nil, fmt.Errorf("snapshot kind %q is not %q", snap.Kind, Kind)
	}
	var st state
	if err := json.Unmarshal(snap.State, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engine state: %w", err)
	}
	clf, err := linear.Restore(st.Classifier)
	if err != nil {
		return nil, err
	}

	factory, err := linear.FactoryFor(st.Classifier.Kind)
	if err != nil {
		return nil, err
	}

	e := New(Options{Language: snap.Language, ExtraStopWords: st.ExtraStopWords, Weighting: st.Weighting, Classifier: factory})
	e.space = vectorize.Restore(st.Weighting, st.Terms, st.IDF)
	e.clf = clf
	return e, nil
}
