package logger

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(str, "")
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{"JSON output mode", true, 0},
		{"Console output mode", false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(LevelName(tt.verbosity), func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
		})
	}
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(0, OutputResults))
	assert.False(t, ShouldOutput(0, OutputSummary))
	assert.True(t, ShouldOutput(1, OutputSummary))
	assert.False(t, ShouldOutput(1, OutputTiming))
	assert.True(t, ShouldOutput(3, OutputDataDump))
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := zap.New(core).Sugar()

	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithComponent(ctx, "export")
	LoggerFromContext(ctx, base).Infow("Exported unit", FieldUnit, "shapes")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "run-1", fields[FieldRunID])
	assert.Equal(t, "export", fields[FieldComponent])
	assert.Equal(t, "shapes", fields[FieldUnit])
	assert.Equal(t, "run-1", RunIDFromContext(ctx))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewNop().Sugar()
	assert.Same(t, l, OrNop(l))
}

func TestMinimalEncoderKeepsEveryField(t *testing.T) {
	enc := newMinimalEncoder()
	entry := zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       time.Date(2024, 1, 1, 13, 4, 35, 0, time.UTC),
		LoggerName: "lower",
		Message:    "Directive renamed",
	}
	fields := []zapcore.Field{
		zap.String("namespace", "http://example.org/ns"),
		zap.Int("count", 3),
		zap.Bool("synthesized", true),
		zap.Strings("names", []string{"ns", "ns_1"}),
	}

	buf, err := enc.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := stripANSI(buf.String())

	assert.Contains(t, out, "13:04:35")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "lower")
	assert.Contains(t, out, "Directive renamed")
	assert.Contains(t, out, "namespace=http://example.org/ns")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "synthesized=true")
	assert.Contains(t, out, "names=")
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)
	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme)
	assert.Equal(t, []string{"everforest", "gruvbox"}, Themes())
}
