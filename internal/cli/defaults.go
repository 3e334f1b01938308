package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/input/keymap"
)

func newDefaultsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default binding table as a binding file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return keymap.Encode(cmd.OutOrStdout(), keymap.Default(), keymap.Format(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(keymap.FormatTOML), "Output format: toml, yaml or json")
	return cmd
}
