package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/itemstore/internal/config"
	"github.com/roach88/itemstore/internal/record"
	"github.com/roach88/itemstore/internal/seed"
)

// RootOptions holds global flags and the resolved configuration shared by
// all commands.
type RootOptions struct {
	ConfigPath string
	Config     config.Config
	Logger     *slog.Logger

	viper *viper.Viper
}

// NewRootCommand creates the root command for the itemstore CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	opts.viper = config.New()

	cmd := &cobra.Command{
		Use:   "itemstore",
		Short: "itemstore - concurrent in-memory record store",
		Long: `Create, get and list records in an in-memory store.

Every invocation starts from an empty store, or from the records in the
--seed file. Nothing is written back: the store lives for one command.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(opts.viper, cmd.Flags()); err != nil {
				return WrapExitError(ExitCommandError, ErrCodeConfig, "invalid flags", err)
			}
			cfg, err := config.Load(opts.viper, opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
			}
			opts.Config = cfg
			opts.Logger = cfg.Logger(cmd.ErrOrStderr())
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	cmd.PersistentFlags().String("format", "text", "output format (json|text)")
	cmd.PersistentFlags().String("seed", "", "seed file with initial records (.yaml, .yml or .cue)")
	cmd.PersistentFlags().String("id-strategy", config.IDStrategyUUID, "record id strategy (uuid|uuidv7|sequence)")

	// Add subcommands
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStressCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are reported through the configured output format.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	f := opts.formatter(cmd)
	if f.Format != "json" {
		f.Writer = stderr
	}
	_ = f.Error(GetErrorCode(err), err.Error(), errorDetails(err))
	return GetExitCode(err)
}

// errorDetails extracts structured context for known error kinds, or nil.
func errorDetails(err error) any {
	var seedErr *seed.Error
	if errors.As(err, &seedErr) {
		return map[string]string{"seed_code": seedErr.Code, "path": seedErr.Path}
	}
	if field := record.ValidationField(err); field != "" {
		return map[string]string{"field": field}
	}
	return nil
}

// logger returns the configured logger, or a discarding one when commands
// run without the root's pre-run (as in tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	format := o.Config.Format
	if format == "" {
		format = "text"
	}
	return &OutputFormatter{
		Format:    format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Config.Verbose,
	}
}
