// Package cli defines the keychord command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/logging"
)

// globalFlags holds values bound to persistent flags.
type globalFlags struct {
	configFile string
	bindings   string
	debug      bool
}

// NewRootCmd builds the keychord command tree.
func NewRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "keychord",
		Short:         "Keyboard shortcut engine for terminal applications",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			return initRuntime(cmd, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt, ok := lookupRuntime(cmd.Context()); ok {
				return rt.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Path to a config file (defaults to the user config directory)")
	root.PersistentFlags().StringVarP(&flags.bindings, "bindings", "b", "", "Binding file to use instead of the configured one")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug-level logging")

	root.AddCommand(
		newRunCmd(),
		newCheckCmd(),
		newListCmd(),
		newDefaultsCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI. Called by main.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// initRuntime loads config and logger before each command runs.
func initRuntime(cmd *cobra.Command, flags globalFlags) error {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if flags.bindings != "" {
		cfg.Bindings = flags.bindings
	}

	lc := cfg.LoggingConfig()
	if flags.debug {
		lc.Level = "debug"
	}

	var logFile io.Closer
	lc.Output = cmd.ErrOrStderr()
	if cfg.Log.File != "" && lc.Level != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		lc.Output = f
		logFile = f
	}

	log, err := logging.New(lc)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return fmt.Errorf("logger: %w", err)
	}
	if cfg.File != "" {
		log.Debug("loaded config", "path", cfg.File)
	}

	cmd.SetContext(NewContext(cmd.Context(), &Runtime{
		Config:  cfg,
		Log:     log,
		Debug:   flags.debug,
		logFile: logFile,
	}))
	return nil
}
