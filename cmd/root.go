package cmd

import (
	"database/sql"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/trknhr/intently/internal/config"
	"github.com/trknhr/intently/internal/logger"
	"github.com/trknhr/intently/internal/store"
	"github.com/trknhr/intently/internal/vectors"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	cfg        *config.Config
	configPath string
	logLevel   string
	db         *sql.DB
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "intently",
		Short:         "Train and run small intent classifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			cfg, err := config.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
			}
			if err := logger.Init(cfg.Log.File, cfg.Log.Level); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error, none)")

	cmd.AddCommand(
		newTrainCmd(a),
		newPredictCmd(a),
		newEvalCmd(a),
		newCompareCmd(a),
		newVectorsCmd(a),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// database opens the configured database once per run.
func (a *app) database() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := store.OpenDB(a.cfg.Store.DBPath)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) saver() (store.Saver, error) {
	if a.cfg.Store.Kind != "sql" {
		return store.FileSaver{}, nil
	}
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return store.NewSQLSaver(db), nil
}

// table loads the configured embedding table, or returns nil when neither
// the engine nor the extractor needs one.
func (a *app) table() (vectors.Table, error) {
	if !a.cfg.NeedsVectors() {
		return nil, nil
	}
	if a.cfg.Vectors.FromDB {
		db, err := a.database()
		if err != nil {
			return nil, err
		}
		return vectors.NewSQLStore(db).Load(a.cfg.Vectors.Name)
	}
	return vectors.Resolve(a.cfg.Vectors.Name, a.cfg.Vectors.Dir)
}
