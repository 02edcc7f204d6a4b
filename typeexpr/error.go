package typeexpr

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// ErrorContext selects how a ParseError renders itself
type ErrorContext int

const (
	ErrorContextTerminal ErrorContext = iota // Colored, multi-line
	ErrorContextPlain                        // Single line for logs
)

// ParseError describes a malformed type spelling
type ParseError struct {
	Source      string   // Full input
	Message     string   // Human-readable message
	Offset      int      // Byte offset of the offending token
	Token       string   // Offending token text, empty at end of input
	Suggestions []string // Possible fixes
}

// Error implements error interface
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError generates context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

func (e *ParseError) formatPlainError() string {
	msg := fmt.Sprintf("%s at offset %d in %q", e.Message, e.Offset, e.Source)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *ParseError) formatTerminalError() string {
	var b strings.Builder
	b.WriteString(pterm.Red(e.Message))
	b.WriteString("\n\n  ")
	b.WriteString(e.Source)
	b.WriteString("\n  ")
	b.WriteString(strings.Repeat(" ", e.Offset))
	b.WriteString(pterm.Yellow("^"))
	if e.Token != "" {
		b.WriteString(fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Token:"), e.Token))
	}
	if len(e.Suggestions) > 0 {
		b.WriteString(fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:")))
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}
	return b.String()
}
