package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/ontic"
	"github.com/reoring/ontic/internal/logging"
)

// errInvalid is returned after violations have been printed.
var errInvalid = errors.New("validation failed")

// options holds the persistent flags shared by every command.
type options struct {
	logLevel string
	format   string
	maxDepth int
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{logger: logging.NewNop()}
	cmd := &cobra.Command{
		Use:           "ontic",
		Short:         "Ontic checks object schemas and the objects they describe",
		Long:          `Ontic loads property schemas from JSON or YAML, fills in their canonical keys and validates schemas and objects against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			opts.logger = logging.NewWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}
	// Persistent flags (available to all commands)
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "", "Document format (json or yaml); defaults to the file extension")
	cmd.PersistentFlags().IntVar(&opts.maxDepth, "max-depth", 64, "Maximum nesting depth of input documents (0 = unlimited)")

	cmd.AddCommand(
		newValidateCmd(opts),
		newPerfectCmd(opts),
		newCheckCmd(opts),
		newJSONSchemaCmd(opts),
	)
	return cmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func (o *options) loadOpt() ontic.LoadOpt {
	opt := ontic.DefaultLoadOpt()
	opt.MaxDepth = o.maxDepth
	return opt
}

// readDocument reads path and resolves its format from --format or the
// file extension.
func (o *options) readDocument(path string) ([]byte, ontic.Format, error) {
	f, err := o.resolveFormat(path)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	o.logger.Debug("read document", "path", path, "format", f, "bytes", len(data))
	return data, f, nil
}

func (o *options) resolveFormat(path string) (ontic.Format, error) {
	if o.format != "" {
		f, ok := ontic.ParseFormat(o.format)
		if !ok {
			return 0, fmt.Errorf("--format: unsupported format %q", o.format)
		}
		return f, nil
	}
	f, ok := ontic.FormatFromPath(path)
	if !ok {
		return 0, fmt.Errorf("%s: cannot tell the format from the extension; use --format", path)
	}
	return f, nil
}

func (o *options) loadSchema(path string) (*ontic.SchemaType, ontic.Format, error) {
	data, f, err := o.readDocument(path)
	if err != nil {
		return nil, 0, err
	}
	s, err := ontic.LoadSchema(data, f, o.loadOpt())
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Debug("loaded schema", "path", path, "properties", s.Len())
	return s, f, nil
}

// report prints violations one per line and returns errInvalid when any.
func report(cmd *cobra.Command, what string, msgs []string) error {
	if len(msgs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", what)
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintln(cmd.OutOrStdout(), m)
	}
	return errInvalid
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
