package classifier_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/intently/internal/classifier"
	"github.com/trknhr/intently/internal/dataset"
	"github.com/trknhr/intently/internal/model/entity"
)

func TestClassifier_Evaluate(t *testing.T) {
	engine := &MockEngine{PredictFunc: func(texts []string) ([]string, []float64, error) {
		return []string{"greet", "greet", "music", "greet"}, []float64{0.9, 0.8, 0.7, 0.6}, nil
	}}
	c, err := classifier.New(engine)
	require.NoError(t, err)

	report, err := c.Evaluate([]entity.TrainingExample{
		{Text: "hi", Intent: "greet"},
		{Text: "hello", Intent: "greet"},
		{Text: "play", Intent: "music"},
		{Text: "song", Intent: "music"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Correct)
	assert.InDelta(t, 0.75, report.Accuracy, 1e-9)
	assert.Equal(t, []string{"greet", "music"}, report.Intents)
	assert.Equal(t, classifier.IntentStats{Support: 2, Correct: 2, Predicted: 3}, report.PerIntent["greet"])
	assert.Equal(t, classifier.IntentStats{Support: 2, Correct: 1, Predicted: 1}, report.PerIntent["music"])
	assert.InDelta(t, 2.0/3.0, report.PerIntent["greet"].Precision(), 1e-9)
	assert.InDelta(t, 0.5, report.PerIntent["music"].Recall(), 1e-9)
	require.Len(t, report.Misses, 1)
	assert.Equal(t, "song", report.Misses[0].Text)
	assert.Equal(t, "greet", report.Misses[0].Intent)
}

func TestClassifier_EvaluateBeforeFit(t *testing.T) {
	c, err := classifier.New(classifier.DefaultEngine("spanish"))
	require.NoError(t, err)

	_, err = c.Evaluate([]entity.TrainingExample{{Text: "hola", Intent: "small_talk"}})
	assert.ErrorIs(t, err, entity.ErrNotFitted)
}

func TestCompare(t *testing.T) {
	train, err := dataset.Parse(strings.NewReader(spanishDataset))
	require.NoError(t, err)

	test := []entity.TrainingExample{
		{Text: "Hola como te encuentras?", Intent: "small_talk"},
		{Text: "Quiero aprender sobre lo último de python", Intent: "search"},
		{Text: "describeme usando un meme", Intent: "meme"},
	}

	var candidates []classifier.Candidate
	for _, name := range []string{classifier.EngineLogistic, classifier.EngineSGD} {
		candidates = append(candidates, classifier.Candidate{Name: name, Engine: engineNamed(t, name)})
	}

	results, err := classifier.Compare(context.Background(), candidates, train, test)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, classifier.EngineLogistic, results[0].Name)
	assert.Equal(t, classifier.EngineSGD, results[1].Name)
	for _, r := range results {
		assert.Equal(t, 1.0, r.Report.Accuracy)
	}
}

func TestCompare_Canceled(t *testing.T) {
	train, err := dataset.Parse(strings.NewReader(spanishDataset))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = classifier.Compare(ctx, []classifier.Candidate{{Name: "logistic", Engine: engineNamed(t, classifier.EngineLogistic)}}, train, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
