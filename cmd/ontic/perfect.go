package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/ontic"
)

func newPerfectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "perfect SCHEMA",
		Short: "Print the canonical form of a schema",
		Long:  `Prints the schema with every property schema key present, in the input format.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, f, err := opts.loadSchema(args[0])
			if err != nil {
				return err
			}
			if err := ontic.PerfectSchema(s); err != nil {
				return err
			}
			out, err := ontic.Encode(s, f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
