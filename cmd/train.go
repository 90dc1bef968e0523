package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trknhr/intently/internal/classifier"
	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/model/entity"
	"github.com/trknhr/intently/internal/model/vectorize"
	"github.com/trknhr/intently/internal/store"
)

func newTrainCmd(a *app) *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "train DATASET",
		Short: "Fit a classifier on a JSON dataset and save it",
		Example: `
  # Train the default engine and save to model.json
  intently train data/intents.json -o model.json

  # Train the calibrated SVM engine
  INTENTLY_ENGINE=sgd intently train data/intents.json -c intently.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.train(cmd, args[0], output, force)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "model.json", "Where to save the fitted model")
	cmd.Flags().BoolVar(&force, "force", false, "Retrain even when the dataset did not change")

	return cmd
}

func (a *app) newClassifier() (*classifier.Classifier, error) {
	table, err := a.table()
	if err != nil {
		return nil, err
	}

	var engine entity.IntentEngine
	if a.cfg.Weighting != "" {
		engine, err = classifier.NewWeightedEngine(a.cfg.Engine, a.cfg.Language, vectorize.Weighting(a.cfg.Weighting))
	} else {
		engine, err = classifier.NewEngine(a.cfg.Engine, a.cfg.Language, table)
	}
	if err != nil {
		return nil, err
	}

	extractor, err := classifier.NewExtractor(a.cfg.Extractor, table)
	if err != nil {
		return nil, err
	}
	saver, err := a.saver()
	if err != nil {
		return nil, err
	}
	return classifier.New(engine, classifier.WithFeatureExtractor(extractor), classifier.WithSaver(saver))
}

func (a *app) train(cmd *cobra.Command, datasetPath, output string, force bool) error {
	var meta *store.MetaStore
	if a.cfg.Store.Kind == "sql" {
		db, err := a.database()
		if err != nil {
			return err
		}
		meta = store.NewMetaStore(db)
		if !force && !meta.NeedsRetrain(output, datasetPath) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", output)
			return nil
		}
	}

	c, err := a.newClassifier()
	if err != nil {
		return err
	}
	if err := c.Fit(datasetPath); err != nil {
		return err
	}
	if err := c.Save(output); err != nil {
		return err
	}
	if meta != nil {
		if err := meta.Touch(output, datasetPath); err != nil {
			logger.Warn("failed to record dataset mtime: %v", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "trained %s engine on %d intents, saved to %s\n", a.cfg.Engine, len(c.Intents()), output)
	return nil
}
