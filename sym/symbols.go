// Package sym defines canonical symbols for xcore commands and the kinds of
// notation elements. These symbols are stable across CLI help and summaries.
package sym

// Command glyphs
const (
	AM      = "≡" // am: configuration and system settings
	Export  = "⟶" // export: model document to notation units
	Watch   = "⟳" // watch: re-export on change
	Version = "⍟" // version: build information
)

// Notation element glyphs
const (
	Package   = "⊔" // unit
	Class     = "◆"
	Interface = "◇"
	Enum      = "▤"
	DataType  = "▣"
	Directive = "@" // annotation directive
)

// Commands lists the commands that have a glyph, in help order.
var Commands = []string{"export", "watch", "am", "version"}

// SymbolToCommand maps glyph strings to their text command equivalents.
var SymbolToCommand = map[string]string{
	Export:  "export",
	Watch:   "watch",
	AM:      "am",
	Version: "version",
}

// CommandToSymbol maps text commands to their canonical glyph strings.
var CommandToSymbol = map[string]string{
	"export":  Export,
	"watch":   Watch,
	"am":      AM,
	"version": Version,
}

// CommandDescriptions provides one-line explanations used in command help.
var CommandDescriptions = map[string]string{
	"export":  "Export a model document to notation units",
	"watch":   "Re-export a model document whenever it changes",
	"am":      "Manage xcore configuration",
	"version": "Show xcore version information",
}

// Short returns the glyph-prefixed description of cmd, or "" for a command
// without a glyph.
func Short(cmd string) string {
	glyph, ok := CommandToSymbol[cmd]
	if !ok {
		return ""
	}
	return glyph + " " + CommandDescriptions[cmd]
}

// ClassifierGlyph returns the glyph of a classifier kind as reported by
// the printer keywords: class, abstract class, interface, enum or type.
func ClassifierGlyph(kind string) string {
	switch kind {
	case "interface":
		return Interface
	case "enum":
		return Enum
	case "type":
		return DataType
	case "class", "abstract class":
		return Class
	}
	return ""
}
