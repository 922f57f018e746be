package decoder

import (
	"fmt"
	"strings"
)

// Error is the single error kind the decoder raises: a message paired with
// the 1-based source line it was detected on, optionally rendered against
// the offending source line for a human-readable report (adapted from the
// teacher's errors.CompilerError, dropped down to line-only since TOON's
// line-oriented grammar never needs a column).
type Error struct {
	Message string
	Source  string
	Line    int
}

// NewError builds a decode error at line, optionally carrying the full
// source document for context rendering.
func NewError(line int, message, source string) *Error {
	return &Error{Message: message, Source: source, Line: line}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Format()
}

// Format renders "Error at line N: message".
func (e *Error) Format() string {
	return fmt.Sprintf("Error at line %d: %s", e.Line, e.Message)
}

// FormatWithContext renders the error message preceded by the offending
// source line and a caret pointing at its start.
func (e *Error) FormatWithContext() string {
	line := e.sourceLine(e.Line)
	if line == "" {
		return e.Format()
	}
	var sb strings.Builder
	lineNumStr := fmt.Sprintf("%4d | ", e.Line)
	sb.WriteString(fmt.Sprintf("Error at line %d\n", e.Line))
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)))
	sb.WriteString("^\n")
	sb.WriteString(e.Message)
	return sb.String()
}

func (e *Error) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders one or more decode errors, numbering them when there
// is more than one.
func FormatErrors(errs []*Error) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Decoding failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d] ", i+1, len(errs)))
		sb.WriteString(err.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
