package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/input/keymap"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate binding files",
		Long: `Validate binding files.

Each file is parsed and built into a table with duplicate detection turned
on, so the same key sequence bound twice is reported as an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			loader := keymap.NewLoader()

			failed := 0
			for _, path := range args {
				bindings, err := loader.LoadFile(path)
				if err == nil {
					_, err = keymap.NewTable(bindings, keymap.Strict())
				}
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: ok, %d bindings\n", path, len(bindings))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
}
