package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/xcore/display"
	"github.com/teranos/xcore/sym"
	"github.com/teranos/xcore/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: sym.Short("version"),
	Long:  `Display version, build time, commit hash, and platform information for the xcore binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(info)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Semver: %s\n", info.Semver())
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}
