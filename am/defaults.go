package am

import (
	"github.com/spf13/viper"

	"github.com/teranos/xcore/genmodel"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	std := genmodel.StandardDefaults()

	// Export defaults
	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.locale", "und")
	v.SetDefault("export.overrides", "")

	// Generator defaults shared by the defaults tree and the actual tree
	v.SetDefault("genmodel.compliance_level", std.ComplianceLevel)
	v.SetDefault("genmodel.runtime_version", std.RuntimeVersion)
	v.SetDefault("genmodel.model_directory", std.ModelDirectory)
	v.SetDefault("genmodel.copyright_text", std.CopyrightText)
	v.SetDefault("genmodel.model_plugin_id", std.ModelPluginID)
	v.SetDefault("genmodel.operation_reflection", std.OperationReflection)

	// Logging defaults
	v.SetDefault("log.theme", "everforest")
	v.SetDefault("log.json", false)

	// Watch defaults
	v.SetDefault("watch.debounce_ms", 500) // Editors write in bursts
}

// BindEnvVars binds the short environment variable names to configuration keys
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("export.output_dir", "XCORE_OUTPUT", "XCORE_EXPORT_OUTPUT_DIR")
	v.BindEnv("export.locale", "XCORE_LOCALE", "XCORE_EXPORT_LOCALE")
	v.BindEnv("log.json", "XCORE_LOG_JSON")
}

// DefaultConfig returns the configuration with every default applied
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always decode.
		panic(err)
	}
	return cfg
}
