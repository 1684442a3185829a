package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/ontic"
)

func newCheckCmd(opts *options) *cobra.Command {
	var (
		schemaPath string
		perfect    bool
		printObj   bool
	)
	cmd := &cobra.Command{
		Use:   "check --schema SCHEMA OBJECT",
		Short: "Validate an object document against a schema",
		Long:  `Loads the schema and the object, optionally perfects the object (strip undeclared properties, apply defaults) and reports every violation. Exits 1 when either is invalid.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.loadSchema(schemaPath)
			if err != nil {
				return err
			}
			msgs, err := ontic.ValidateSchema(s, ontic.ValidateOpt{ReturnErrors: true})
			if err != nil {
				return err
			}
			if len(msgs) > 0 {
				return report(cmd, "schema", msgs)
			}
			ot, err := ontic.CreateObjectType(baseName(schemaPath), s)
			if err != nil {
				return err
			}
			data, f, err := opts.readDocument(args[0])
			if err != nil {
				return err
			}
			o, err := ontic.LoadObject(ot, data, f, opts.loadOpt())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if perfect {
				if err := ontic.PerfectObject(o); err != nil {
					return err
				}
			}
			msgs, err = ontic.ValidateObject(o, ontic.ValidateOpt{ReturnErrors: true})
			if err != nil {
				return err
			}
			opts.logger.Info("validated object", "path", args[0], "type", ot.Name(), "violations", len(msgs))
			if printObj && len(msgs) == 0 {
				out, err := ontic.Encode(o, f)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return report(cmd, "object", msgs)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema document")
	cmd.Flags().BoolVar(&perfect, "perfect", false, "Perfect the object before validating")
	cmd.Flags().BoolVar(&printObj, "print", false, "Print the (perfected) object instead of a summary when valid")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
