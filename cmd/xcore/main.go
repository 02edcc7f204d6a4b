package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/xcore/am"
	"github.com/teranos/xcore/cmd/xcore/commands"
	"github.com/teranos/xcore/logger"
)

var rootCmd = &cobra.Command{
	Use:   "xcore",
	Short: "xcore - Export metamodels to textual notation",
	Long: `xcore - Export Ecore-style metamodels to a textual notation.

xcore reads a model document (packages, classifiers, features and their
generator customizations), lowers every package into a notation unit and
writes one .xcore file per package.

Available commands:
  export  - Export a model document
  watch   - Re-export a model document whenever it changes
  am      - Manage xcore configuration ("I am")
  version - Show version information

Examples:
  xcore export model.yaml                   # Write <Prefix>.xcore files to the output dir
  xcore export model.yaml --output -        # Print units instead of writing them
  xcore export model.yaml --package shapes  # Export a single package
  xcore watch model.yaml --output gen       # Re-export on every save
  xcore am show --sources                   # Show configuration and where it came from`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		// A broken config must not prevent `am` from reporting it
		cfg, err := am.Load()
		if err != nil {
			if err := logger.Initialize(false, verbosity); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if cmd.Parent() != nil && cmd.Parent().Name() == "am" {
				return nil
			}
			return err
		}

		logger.SetTheme(cfg.Log.Theme)
		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	// Add commands
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.FormatError(err))
		os.Exit(1)
	}
}
