package main

import (
	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	js "github.com/reoring/ontic/jsonschema"
)

func newJSONSchemaCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema SCHEMA",
		Short: "Print the JSON Schema projection of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.loadSchema(args[0])
			if err != nil {
				return err
			}
			out, err := s.JSONSchema()
			if err != nil {
				return err
			}
			out.SchemaURI = js.Draft
			out.Title = baseName(args[0])
			b, err := j.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			b = append(b, '\n')
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
