package am

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/teranos/xcore/genmodel"
)

// Config represents the xcore configuration
type Config struct {
	Export   ExportConfig   `mapstructure:"export" toml:"export" yaml:"export" json:"export"`
	GenModel GenModelConfig `mapstructure:"genmodel" toml:"genmodel" yaml:"genmodel" json:"genmodel"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// ExportConfig configures where and how units are exported
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir" toml:"output_dir" yaml:"output_dir" json:"output_dir"` // Directory units are written to (default: ".")
	Locale    string `mapstructure:"locale" toml:"locale" yaml:"locale" json:"locale"`                 // BCP 47 tag for directive name casing (default: "und")
	Overrides string `mapstructure:"overrides" toml:"overrides" yaml:"overrides" json:"overrides"`     // TOML sidecar with customizations (default: none)
}

// GenModelConfig holds the project-level generator defaults. Settings equal
// to these values are not written into exported units.
type GenModelConfig struct {
	ComplianceLevel     string `mapstructure:"compliance_level" toml:"compliance_level" yaml:"compliance_level" json:"compliance_level"`                 // Java compliance level (default: "8.0")
	RuntimeVersion      string `mapstructure:"runtime_version" toml:"runtime_version" yaml:"runtime_version" json:"runtime_version"`                     // Target runtime version, a semantic version (default: "2.20")
	ModelDirectory      string `mapstructure:"model_directory" toml:"model_directory" yaml:"model_directory" json:"model_directory"`                     // Generated model source folder (default: "/src")
	CopyrightText       string `mapstructure:"copyright_text" toml:"copyright_text" yaml:"copyright_text" json:"copyright_text"`                         // Header for generated files (default: none)
	ModelPluginID       string `mapstructure:"model_plugin_id" toml:"model_plugin_id" yaml:"model_plugin_id" json:"model_plugin_id"`                     // Plugin id (default: first package name)
	OperationReflection bool   `mapstructure:"operation_reflection" toml:"operation_reflection" yaml:"operation_reflection" json:"operation_reflection"` // Reflective operation invocation (default: true)
}

// LogConfig configures console logging
type LogConfig struct {
	Theme string `mapstructure:"theme" toml:"theme" yaml:"theme" json:"theme"` // Color theme: everforest, gruvbox (default: everforest)
	JSON  bool   `mapstructure:"json" toml:"json" yaml:"json" json:"json"`     // JSON output instead of console (default: false)
}

// WatchConfig configures `xcore watch`
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"` // Quiet period before re-exporting (default: 500)
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// ConfigFileName is the name of system, user and project config files
const ConfigFileName = "xcore.toml"

// Defaults converts the generator settings for genmodel.
func (g GenModelConfig) Defaults() genmodel.Defaults {
	return genmodel.Defaults{
		ModelPluginID:       g.ModelPluginID,
		ModelDirectory:      g.ModelDirectory,
		CopyrightText:       g.CopyrightText,
		ComplianceLevel:     g.ComplianceLevel,
		RuntimeVersion:      g.RuntimeVersion,
		OperationReflection: g.OperationReflection,
	}
}

// Tag returns the configured locale, or language.Und when unset or invalid.
func (e ExportConfig) Tag() language.Tag {
	if e.Locale == "" {
		return language.Und
	}
	tag, err := language.Parse(e.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// Debounce returns the watch debounce period
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Export: {OutputDir: %s, Locale: %s}, GenModel: {ComplianceLevel: %s, RuntimeVersion: %s}, Log: {Theme: %s}}",
		c.Export.OutputDir, c.Export.Locale, c.GenModel.ComplianceLevel, c.GenModel.RuntimeVersion, c.Log.Theme)
}
