package cmd

import (
	"bufio"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/trknhr/intently/internal/classifier"
)

func newPredictCmd(a *app) *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "predict [TEXT...]",
		Short: "Predict the intent of each text",
		Long: `Predict the intent of each argument, or of each line of stdin when no
argument is given. Results are printed as JSON lines.`,
		Example: `
  intently predict -m model.json "quiero el ultimo blogpost"
  cat queries.txt | intently predict -m model.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if len(texts) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						texts = append(texts, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}

			c, err := a.loadClassifier(modelPath)
			if err != nil {
				return err
			}
			results, err := c.MultiplePredict(texts, a.cfg.FeatureThreshold())
			if err != nil {
				return err
			}

			enc := jsoniter.NewEncoder(cmd.OutOrStdout())
			for _, r := range results {
				// JSON has no infinity; it means no word of the text is in the vectors table
				if math.IsInf(r.Probability, 1) {
					r.Probability = -1
				}
				if err := enc.Encode(r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "model.json", "Saved model to load")

	return cmd
}

func (a *app) loadClassifier(path string) (*classifier.Classifier, error) {
	saver, err := a.saver()
	if err != nil {
		return nil, err
	}
	table, err := a.table()
	if err != nil {
		return nil, err
	}
	return classifier.Load(saver, path, classifier.WithVectors(table))
}
