package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/itemstore/internal/record"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Name     string
	Category string
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record",
		Long: `Create a record in a store built from the seed file and print it.

Both --name and --category must be non-empty after trimming whitespace.

Examples:
  itemstore create --name "Euro notes" --category EUR
  itemstore create --seed items.yaml --name Widget --category GBP --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "record name")
	cmd.Flags().StringVar(&opts.Category, "category", "", "record category")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}

	rec, err := st.Create(cmd.Context(), record.CreateRequest{Name: opts.Name, Category: opts.Category})
	if err != nil {
		return storeError("create", err)
	}

	opts.logger().Debug("record created", "id", rec.ID, "seq", rec.Seq)
	return opts.formatter(cmd).Success(rec)
}
