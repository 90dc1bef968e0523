package classifier

import (
	"context"
	"fmt"

	"github.com/trknhr/intently/internal/dataset"
	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/model/entity"
	"golang.org/x/sync/errgroup"
)

type IntentStats struct {
	Support int `json:"support"`
	Correct int `json:"correct"`
	// Predicted counts predictions of this intent, right or wrong.
	Predicted int `json:"predicted"`
}

func (s IntentStats) Recall() float64 {
	if s.Support == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Support)
}

func (s IntentStats) Precision() float64 {
	if s.Predicted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predicted)
}

type Report struct {
	Total     int                       `json:"total"`
	Correct   int                       `json:"correct"`
	Accuracy  float64                   `json:"accuracy"`
	Intents   []string                  `json:"intents"`
	PerIntent map[string]IntentStats    `json:"per_intent"`
	Misses    []entity.PredictionResult `json:"misses,omitempty"`
}

// Evaluate predicts every example and compares against its label. Intents
// are listed in first-seen order over labels then predictions.
func (c *Classifier) Evaluate(examples []entity.TrainingExample) (*Report, error) {
	texts, labels := entity.Examples(examples)
	intents, scores, err := c.engine.Predict(texts)
	if err != nil {
		return nil, err
	}

	r := &Report{Total: len(examples), PerIntent: make(map[string]IntentStats)}
	seen := func(name string) {
		if _, ok := r.PerIntent[name]; !ok {
			r.PerIntent[name] = IntentStats{}
			r.Intents = append(r.Intents, name)
		}
	}
	for _, l := range labels {
		seen(l)
	}

	for i, want := range labels {
		got := intents[i]
		seen(got)

		ws := r.PerIntent[want]
		ws.Support++
		if got == want {
			ws.Correct++
			r.Correct++
		}
		r.PerIntent[want] = ws

		gs := r.PerIntent[got]
		gs.Predicted++
		r.PerIntent[got] = gs

		if got != want {
			r.Misses = append(r.Misses, entity.PredictionResult{
				Text: texts[i], Intent: got, Probability: scores[i], Kind: c.engine.ScoreKind(),
			})
		}
	}
	if r.Total > 0 {
		r.Accuracy = float64(r.Correct) / float64(r.Total)
	}
	return r, nil
}

type Candidate struct {
	Name   string
	Engine entity.IntentEngine
}

type Comparison struct {
	Name   string  `json:"name"`
	Report *Report `json:"report"`
}

// Compare fits each candidate on train and evaluates it on test, one
// goroutine per candidate. Candidates must not share engine instances.
// Results keep the candidate order.
func Compare(ctx context.Context, candidates []Candidate, train *dataset.Dataset, test []entity.TrainingExample) ([]Comparison, error) {
	results := make([]Comparison, len(candidates))
	g, ctx := errgroup.WithContext(ctx)

	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			c, err := New(cand.Engine)
			if err != nil {
				return err
			}
			if err := c.FitDataset(train); err != nil {
				return fmt.Errorf("%s: %w", cand.Name, err)
			}
			report, err := c.Evaluate(test)
			if err != nil {
				return fmt.Errorf("%s: %w", cand.Name, err)
			}
			logger.Debug("%s: accuracy %.3f on %d examples", cand.Name, report.Accuracy, report.Total)
			results[i] = Comparison{Name: cand.Name, Report: report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
