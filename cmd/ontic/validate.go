package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/ontic"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate SCHEMA",
		Short: "Check a schema document against the property schema rules",
		Long:  `Loads the schema, fills in missing keys and reports every violation, one per line. Exits 1 when the schema is invalid.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.loadSchema(args[0])
			if err != nil {
				return err
			}
			msgs, err := ontic.ValidateSchema(s, ontic.ValidateOpt{ReturnErrors: true})
			if err != nil {
				return err
			}
			opts.logger.Info("validated schema", "path", args[0], "violations", len(msgs))
			return report(cmd, "schema", msgs)
		},
	}
}
