package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trknhr/intently/internal/dataset"
	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/text"
	"github.com/trknhr/intently/internal/vectors"
)

func newVectorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Manage word vector tables",
	}
	cmd.AddCommand(newVectorsImportCmd(a))
	return cmd
}

func newVectorsImportCmd(a *app) *cobra.Command {
	var fromOllama string

	cmd := &cobra.Command{
		Use:   "import NAME [FILE]",
		Short: "Store a word vector table in the database",
		Long: `Import a GloVe or word2vec text file into the word_vectors table under NAME.
With --from-ollama DATASET, embeddings for every word of the dataset are
fetched from the configured Ollama server instead.`,
		Example: `
  intently vectors import glove-twitter-25 ~/glove.twitter.27B.25d.txt
  intently vectors import intents-nomic --from-ollama data/intents.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var kv *vectors.KeyedVectors
			var err error
			switch {
			case fromOllama != "":
				kv, err = a.embedDataset(fromOllama)
			case len(args) == 2:
				kv, err = vectors.ReadFile(args[1])
			default:
				kv, err = vectors.Load(name, a.cfg.Vectors.Dir)
			}
			if err != nil {
				return err
			}

			db, err := a.database()
			if err != nil {
				return err
			}
			if err := vectors.NewSQLStore(db).Import(name, kv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d vectors of dimension %d as %s\n", kv.Len(), kv.Dim(), name)
			return nil
		},
	}
	cmd.Flags().StringVar(&fromOllama, "from-ollama", "", "Embed the vocabulary of this dataset with Ollama")

	return cmd
}

// embedDataset embeds every normalized word of the dataset examples and
// lexicon. Words that fail are logged and skipped.
func (a *app) embedDataset(path string) (*vectors.KeyedVectors, error) {
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, ex := range ds.Examples {
		words = append(words, text.Normalize(ex.Text, text.StopWords{})...)
	}
	for _, row := range ds.Lexicon {
		for _, ex := range row.Examples {
			words = append(words, strings.ToLower(ex))
		}
	}

	client := vectors.NewOllamaClient(a.cfg.Vectors.Ollama.Model)
	client.BaseURL = a.cfg.Vectors.Ollama.BaseURL

	kv, err := vectors.FromEmbedder(client, words)
	if err != nil {
		logger.Warn("some words could not be embedded: %v", err)
	}
	if kv.Len() == 0 {
		return nil, errors.New("no word could be embedded")
	}
	return kv, nil
}
