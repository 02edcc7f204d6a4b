package commands

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/typeexpr"
)

// FormatError renders err for the terminal: type spelling errors point at
// the offending token, and every hint attached along the way is listed
func FormatError(err error) string {
	var b strings.Builder

	var parseErr *typeexpr.ParseError
	if errors.As(err, &parseErr) {
		b.WriteString(pterm.Error.Sprint(err.Error()))
		b.WriteString("\n")
		b.WriteString(parseErr.FormatError(typeexpr.ErrorContextTerminal))
	} else {
		b.WriteString(pterm.Error.Sprint(err.Error()))
	}

	for _, hint := range errors.GetAllHints(err) {
		b.WriteString("\n")
		b.WriteString(pterm.Gray("hint: " + hint))
	}
	return b.String()
}
