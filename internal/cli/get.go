package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a record by id",
		Long: `Look up a record by id in the store built from the seed file.

Exit codes:
  0 - Record found
  1 - No record with that id
  2 - Command error (unreadable seed, etc.)

Example:
  itemstore get --seed items.yaml seed-eur`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runGet(opts *RootOptions, id string, cmd *cobra.Command) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}

	rec, ok, err := st.Get(cmd.Context(), id)
	if err != nil {
		return storeError("get", err)
	}
	if !ok {
		return NewExitError(ExitFailure, ErrCodeNotFound, fmt.Sprintf("record not found: %s", id))
	}

	return opts.formatter(cmd).Success(rec)
}
