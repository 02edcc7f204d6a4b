package logger

// OutputCategory defines a category of CLI output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information the CLI prints regardless of severity.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Rendered units, written artifact paths
	OutputErrors                        // Errors with hints

	// Level 1 (-v)
	OutputSummary // Per-unit summary table
	OutputConfig  // Config file in effect

	// Level 2 (-vv)
	OutputTiming     // Per-phase timing
	OutputDirectives // Directive table per unit

	// Level 3 (-vvv)
	OutputDataDump // Full rendered unit on stdout alongside the written file
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputSummary:    VerbosityInfo,
	OutputConfig:     VerbosityInfo,
	OutputTiming:     VerbosityDebug,
	OutputDirectives: VerbosityDebug,
	OutputDataDump:   VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
