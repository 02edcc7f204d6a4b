package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/xcore/am"
	"github.com/teranos/xcore/display"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/logger"
	"github.com/teranos/xcore/sym"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: sym.Short("am"),
	Long: `am - Manage xcore configuration ("I am")

Display and manage xcore configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (XCORE_* prefix)
3. Project config (./xcore.toml, searched upward)
4. User config (~/.xcore/xcore.toml)
5. System config (/etc/xcore/xcore.toml)
6. Default values

Examples:
  xcore am show                      # Show current configuration
  xcore am show --format json        # Show configuration in JSON format
  xcore am show --sources            # Show where every setting came from
  xcore am get genmodel.compliance_level
  xcore am validate                  # Validate current configuration
  xcore am init                      # Write ./xcore.toml with every default`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current xcore configuration from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., export.output_dir, watch.debounce_ms)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the current xcore configuration is valid",
	RunE:  runAmValidate,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file holding every default",
	Long: `Write a config file holding every default value.

Without a path the project config ./xcore.toml is written; --user writes
~/.xcore/xcore.toml instead. An existing file is only replaced with --force,
and the old file is kept as a numbered backup.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmInit,
}

var (
	configFormat string
	showSources  bool
	initForce    bool
	initUser     bool
)

func init() {
	// Add flags
	amShowCmd.Flags().StringVar(&configFormat, "format", am.FormatTOML, "Output format: toml, json, yaml")
	amShowCmd.Flags().BoolVar(&showSources, "sources", false, "Show where every setting came from")
	amInitCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing config file")
	amInitCmd.Flags().BoolVar(&initUser, "user", false, "Write the user config instead of the project config")

	// Add subcommands
	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	if showSources {
		return showConfigSources(cmd)
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if configFormat != am.FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout(), "# xcore configuration")
	}
	return am.Encode(cmd.OutOrStdout(), cfg, configFormat)
}

// showConfigSources prints every setting grouped by the file or source that set it
func showConfigSources(cmd *cobra.Command) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}
	if configFormat == am.FormatJSON {
		return display.OutputJSON(intro)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [default]     Built-in defaults")
	fmt.Fprintf(out, "  2. [system]      %s\n", am.SystemConfigPath)
	fmt.Fprintf(out, "  3. [user]        %s\n", am.UserConfigPath())
	fmt.Fprintf(out, "  4. [project]     ./%s (searches up directories)\n", am.ConfigFileName)
	fmt.Fprintln(out, "  5. [environment] XCORE_* environment variables")
	fmt.Fprintln(out)

	order := map[am.ConfigSource]int{
		am.SourceDefault:     0,
		am.SourceSystem:      1,
		am.SourceUser:        2,
		am.SourceProject:     3,
		am.SourceEnvironment: 4,
	}
	settings := append([]am.SettingInfo(nil), intro.Settings...)
	sort.SliceStable(settings, func(i, j int) bool {
		if order[settings[i].Source] != order[settings[j].Source] {
			return order[settings[i].Source] < order[settings[j].Source]
		}
		return settings[i].Key < settings[j].Key
	})

	data := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range settings {
		valueStr := fmt.Sprintf("%v", s.Value)
		// Truncate long values
		if len(valueStr) > 50 {
			valueStr = valueStr[:47] + "..."
		}
		from := s.SourcePath
		if from != "" && s.Source != am.SourceEnvironment {
			from = filepath.Base(filepath.Dir(from)) + "/" + filepath.Base(from)
		}
		data = append(data, []string{s.Key, valueStr, string(s.Source), from})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	if _, err := am.Load(); err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if !am.IsSet(key) {
		return errors.WithHint(
			errors.NewNotFoundf("configuration key %q", key),
			"run `xcore am show` to list every key")
	}

	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	pterm.Success.Println("Configuration is valid")
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.ConfigFileName
	switch {
	case len(args) == 1:
		path = args[0]
	case initUser:
		path = am.UserConfigPath()
		if path == "" {
			return errors.NewPreconditionf("no home directory for the user config")
		}
	}

	if err := am.WriteDefaults(path, initForce); err != nil {
		return err
	}
	logger.Infow("Wrote config", logger.FieldPath, path, "force", initForce)
	pterm.Success.Printf("Wrote %s\n", path)
	return nil
}
