package am

import (
	"os"
	"sort"
	"strings"

	"github.com/teranos/xcore/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/xcore/xcore.toml
	SourceUser        ConfigSource = "user"        // ~/.xcore/xcore.toml
	SourceProject     ConfigSource = "project"     // project xcore.toml
	SourceEnvironment ConfigSource = "environment" // XCORE_* env vars
)

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key"`
	Value      interface{}  `json:"value" yaml:"value"`
	Source     ConfigSource `json:"source" yaml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty"` // File path or env var name
}

// ConfigIntrospection provides metadata about the active configuration
type ConfigIntrospection struct {
	ConfigFile string        `json:"config_file" yaml:"config_file"` // Highest-precedence config file read
	Settings   []SettingInfo `json:"settings" yaml:"settings"`       // All settings with sources
}

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource // The type of config source (default, system, user, etc.)
	Path   string       // File path or environment variable name
}

// envAliases lists the extra environment variables bound in BindEnvVars
var envAliases = map[string][]string{
	"export.output_dir": {"XCORE_OUTPUT"},
	"export.locale":     {"XCORE_LOCALE"},
}

// GetConfigIntrospection returns detailed information about active configuration
// using the sources tracked during actual configuration loading
func GetConfigIntrospection() (*ConfigIntrospection, error) {
	if _, err := Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}
	v := GetViper()

	introspection := &ConfigIntrospection{
		ConfigFile: v.ConfigFileUsed(),
		Settings:   make([]SettingInfo, 0),
	}

	loadMu.Lock()
	sources := make(map[string]SourceInfo, len(ConfigSources))
	for k, s := range ConfigSources {
		sources[k] = s
	}
	loadMu.Unlock()

	flattenSettingsWithSources(v.AllSettings(), "", introspection, sources)
	return introspection, nil
}

// flattenSettingsWithSources flattens settings and assigns sources from sourceMap
func flattenSettingsWithSources(settings map[string]interface{}, prefix string, introspection *ConfigIntrospection, sourceMap map[string]SourceInfo) {
	// Sort keys for deterministic iteration
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := settings[key]
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nestedMap, ok := value.(map[string]interface{}); ok {
			flattenSettingsWithSources(nestedMap, fullKey, introspection, sourceMap)
			continue
		}

		sourceInfo := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := sourceMap[fullKey]; ok {
			sourceInfo = si
		}
		if envKey, ok := envOverride(fullKey); ok {
			sourceInfo = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}

		introspection.Settings = append(introspection.Settings, SettingInfo{
			Key:        fullKey,
			Value:      value,
			Source:     sourceInfo.Source,
			SourcePath: sourceInfo.Path,
		})
	}
}

// envOverride returns the environment variable that sets key, if any
func envOverride(key string) (string, bool) {
	candidates := append([]string{"XCORE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, envAliases[key]...)
	for _, envKey := range candidates {
		if os.Getenv(envKey) != "" {
			return envKey, true
		}
	}
	return "", false
}

// GetConfigSummary returns the number of settings per source
func GetConfigSummary() map[ConfigSource]int {
	summary := map[ConfigSource]int{}
	introspection, err := GetConfigIntrospection()
	if err != nil {
		return summary
	}
	for _, setting := range introspection.Settings {
		summary[setting.Source]++
	}
	return summary
}
