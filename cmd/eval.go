package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trknhr/intently/internal/classifier"
	"github.com/trknhr/intently/internal/dataset"
)

func newEvalCmd(a *app) *cobra.Command {
	var modelPath string
	var showMisses bool

	cmd := &cobra.Command{
		Use:   "eval TESTSET",
		Short: "Measure a saved model against a labelled dataset",
		Example: `
  intently eval -m model.json data/test.json --misses`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			test, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			c, err := a.loadClassifier(modelPath)
			if err != nil {
				return err
			}
			report, err := c.Evaluate(test.Examples)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), modelPath, report, showMisses)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "model.json", "Saved model to load")
	cmd.Flags().BoolVar(&showMisses, "misses", false, "List misclassified examples")

	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var engines []string

	cmd := &cobra.Command{
		Use:   "compare TRAIN TEST",
		Short: "Fit several engines on the same data and compare their accuracy",
		Example: `
  intently compare data/train.json data/test.json --engines logistic,sgd`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			train, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			test, err := dataset.Load(args[1])
			if err != nil {
				return err
			}
			table, err := a.table()
			if err != nil {
				return err
			}

			candidates := make([]classifier.Candidate, 0, len(engines))
			for _, name := range engines {
				engine, err := classifier.NewEngine(name, a.cfg.Language, table)
				if err != nil {
					return err
				}
				candidates = append(candidates, classifier.Candidate{Name: name, Engine: engine})
			}

			results, err := classifier.Compare(context.Background(), candidates, train, test.Examples)
			if err != nil {
				return err
			}
			for _, r := range results {
				printReport(cmd.OutOrStdout(), r.Name, r.Report, false)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&engines, "engines", []string{classifier.EngineLogistic, classifier.EngineSGD},
		"Engines to compare ("+strings.Join(classifier.EngineNames, ",")+")")

	return cmd
}

func printReport(w io.Writer, name string, r *classifier.Report, showMisses bool) {
	fmt.Fprintf(w, "%s: accuracy %d/%d (%.1f%%)\n", name, r.Correct, r.Total, r.Accuracy*100)
	for _, intent := range r.Intents {
		s := r.PerIntent[intent]
		fmt.Fprintf(w, "  %-20s support %3d  precision %5.1f%%  recall %5.1f%%\n",
			intent, s.Support, s.Precision()*100, s.Recall()*100)
	}
	if !showMisses {
		return
	}
	for _, m := range r.Misses {
		fmt.Fprintf(w, "  miss: %q -> %s (%.3f)\n", m.Text, m.Intent, m.Probability)
	}
}
