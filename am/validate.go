package am

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/language"

	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/logger"
)

// ComplianceLevels are the accepted genmodel.compliance_level values
var ComplianceLevels = []string{
	"1.4", "5.0", "6.0", "7.0", "8.0", "9.0", "10.0", "11.0", "12.0", "13.0", "14.0",
	"15.0", "16.0", "17.0", "18.0", "19.0", "20.0", "21.0",
}

// minimumRuntime is the oldest runtime the exported settings are valid for
var minimumRuntime = semver.MustParse("2.2")

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Locale: empty means root casing rules
	if c.Export.Locale != "" {
		if _, err := language.Parse(c.Export.Locale); err != nil {
			return errors.WithHint(
				errors.NewInvalidConfigf("export.locale %q is not a BCP 47 language tag", c.Export.Locale),
				"use a tag such as \"en\", \"tr\" or \"und\"")
		}
	}

	if c.Export.Overrides != "" && !strings.HasSuffix(c.Export.Overrides, ".toml") {
		return errors.NewInvalidConfigf("export.overrides must name a .toml file, got %q", c.Export.Overrides)
	}

	if !isComplianceLevel(c.GenModel.ComplianceLevel) {
		return errors.WithHintf(
			errors.NewInvalidConfigf("genmodel.compliance_level %q is not supported", c.GenModel.ComplianceLevel),
			"supported levels: %s", strings.Join(ComplianceLevels, ", "))
	}

	// Runtime version: a semantic version no older than the minimum
	v, err := semver.NewVersion(c.GenModel.RuntimeVersion)
	if err != nil {
		return errors.Mark(
			errors.Wrapf(err, "genmodel.runtime_version %q", c.GenModel.RuntimeVersion),
			errors.ErrInvalidConfig)
	}
	if v.LessThan(minimumRuntime) {
		return errors.NewInvalidConfigf("genmodel.runtime_version must be >= %s, got %s", minimumRuntime, v)
	}

	if c.GenModel.ModelDirectory == "" {
		return errors.NewInvalidConfigf("genmodel.model_directory cannot be empty")
	}

	if c.Log.Theme != "" && !contains(logger.Themes(), c.Log.Theme) {
		return errors.NewInvalidConfigf("log.theme must be one of %v, got %q", logger.Themes(), c.Log.Theme)
	}

	// Watch debounce: 0 = re-export on every event, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.NewInvalidConfigf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}

func isComplianceLevel(level string) bool {
	return contains(ComplianceLevels, level)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
