package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/input/fuzzy"
	"github.com/dshills/keychord/internal/input/keymap"
)

func newListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active bindings grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			bindings, err := rt.Bindings()
			if err != nil {
				return err
			}
			table, err := rt.Table(bindings)
			if err != nil {
				return err
			}

			listed := table.Bindings()
			if filter != "" {
				matches := fuzzy.Bindings(filter, listed, 0)
				listed = make([]keymap.Binding, len(matches))
				for i, m := range matches {
					listed[i] = m.Binding
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i, cat := range keymap.GroupByCategory(listed) {
				if i > 0 {
					fmt.Fprintln(tw)
				}
				fmt.Fprintf(tw, "%s\n", cat.Name)
				for _, b := range cat.Bindings {
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Pattern.String(), b.Action.String(), b.Description)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only list bindings matching this fuzzy query")
	return cmd
}
