package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <question>",
		Short: "Print the processed form of a question as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, err := a.processor()
			if err != nil {
				return err
			}

			processed := proc.Process(strings.Join(args, " "))
			a.log.Debug("question parsed",
				zap.String("intent", processed.Intent.Intent),
				zap.String("source", string(processed.Intent.Source)),
				zap.Strings("actions", processed.ActionIDs()),
			)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(processed)
		},
	}
}
