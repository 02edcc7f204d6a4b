package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

type palette struct {
	fg       string
	time     string
	name     string
	key      string
	number   string
	yellow   string
	red      string
	redBg    string
	yellowBg string
}

var themes = map[string]palette{
	"gruvbox": {
		fg:       "\x1b[38;5;223m",
		time:     "\x1b[38;5;108m",
		name:     "\x1b[38;5;208m",
		key:      "\x1b[38;5;109m",
		number:   "\x1b[38;5;175m",
		yellow:   "\x1b[38;5;214m",
		red:      "\x1b[38;5;167m",
		redBg:    "\x1b[48;5;88m",
		yellowBg: "\x1b[48;5;58m",
	},
	"everforest": {
		fg:       "\x1b[38;5;223m",
		time:     "\x1b[38;5;107m",
		name:     "\x1b[38;5;108m",
		key:      "\x1b[38;5;109m",
		number:   "\x1b[38;5;108m",
		yellow:   "\x1b[38;5;179m",
		red:      "\x1b[38;5;167m",
		redBg:    "\x1b[48;5;52m",
		yellowBg: "\x1b[48;5;58m",
	},
}

// Current active theme
var currentTheme = "everforest"

// SetTheme configures the color scheme for log output.
// Unknown names are ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

// Themes returns the names of the supported color themes
func Themes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func colors() palette {
	return themes[currentTheme]
}

// minimalEncoder implements a compact console encoder with theme support
// Format: "13:04:35  lower  Lowered package  unit=shapes count=12"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level, c))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.name)
		final.AppendString(ent.LoggerName)
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if len(fields) > 0 {
		final.AppendString("  ")
		final.AppendString(formatFields(fields, c))
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level, c palette) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + c.yellowBg + c.yellow + "WARN" + colorReset
	default:
		return colorBold + c.redBg + c.red + level.CapitalString() + colorReset
	}
}

// fieldValue extracts the value from a zap field as text
func fieldValue(field zapcore.Field) (string, bool) {
	switch field.Type {
	case zapcore.StringType:
		return field.String, false
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer), true
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1), false
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error(), false
		}
	}

	// Everything else goes through a map encoder so no field is dropped
	m := zapcore.NewMapObjectEncoder()
	field.AddTo(m)
	if v, ok := m.Fields[field.Key]; ok {
		return fmt.Sprintf("%v", v), false
	}
	return "", false
}

// formatFields renders every field as key=value
func formatFields(fields []zapcore.Field, c palette) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		val, numeric := fieldValue(field)
		color := c.fg
		if numeric {
			color = c.number
		}
		parts = append(parts, c.key+field.Key+"="+colorReset+color+val+colorReset)
	}
	return strings.Join(parts, " ")
}
