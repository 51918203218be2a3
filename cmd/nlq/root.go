package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"projectflow-workers/internal/common/config"
	"projectflow-workers/internal/common/logger"
	"projectflow-workers/internal/nlq/processor"
	"projectflow-workers/internal/nlq/vocabulary"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfgFile   string
	vocabFile string
	verbose   bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "nlq",
		Short: "Ask questions about a project workspace in plain English",
		Long: `nlq runs the natural-language query pipeline locally.

It matches a question against the action-word vocabulary, classifies its
intent, extracts entities, and optionally executes the resulting query plan
against a fixtures file or a PostgreSQL database.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: built-in defaults)")
	root.PersistentFlags().StringVar(&a.vocabFile, "vocabulary", "", "action-word YAML file (overrides query.vocabulary_path)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log pipeline details to stderr")

	root.AddCommand(
		newParseCmd(a),
		newRunCmd(a),
		newVocabCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.ReadFile(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.verbose {
		a.log = logger.New("debug", "console")
	} else {
		a.log = zap.NewNop()
	}
	return nil
}

// table resolves the vocabulary: --vocabulary, then the config path, then
// the built-in table.
func (a *app) table() (*vocabulary.Table, error) {
	path := a.vocabFile
	if path == "" && a.cfg != nil {
		path = a.cfg.Query.VocabularyPath
	}
	if path == "" {
		return vocabulary.DefaultTable(), nil
	}

	t, err := vocabulary.Load(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("vocabulary loaded", zap.String("path", path), zap.Int("actionWords", t.Len()))
	return t, nil
}

func (a *app) processor() (*processor.Processor, error) {
	t, err := a.table()
	if err != nil {
		return nil, err
	}
	return processor.New(t), nil
}
