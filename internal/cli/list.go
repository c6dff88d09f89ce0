package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/itemstore/internal/record"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Category string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Long: `List records in insertion order.

With --category, only records whose category contains the given text
(ignoring case) are listed. An empty --category lists everything.

Examples:
  itemstore list --seed items.yaml
  itemstore list --seed items.yaml --category eur`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "category substring filter (case-insensitive)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}

	filter := record.AnyCategory()
	if cmd.Flags().Changed("category") {
		filter = record.CategoryContains(opts.Category)
	}

	recs, err := st.List(cmd.Context(), filter)
	if err != nil {
		return storeError("list", err)
	}

	opts.logger().Debug("records listed", "filter", filter.String(), "count", len(recs))
	return opts.formatter(cmd).Success(recs)
}
