package main

import (
	"github.com/spf13/cobra"
)

func newVocabCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Dump the active action-word vocabulary as YAML",
		Long: `Dump the active action-word vocabulary as YAML.

The output can be edited and passed back with --vocabulary or
query.vocabulary_path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				a.vocabFile = file
			}
			t, err := a.table()
			if err != nil {
				return err
			}
			return t.Dump(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "vocabulary file to load instead of the active one")
	return cmd
}
