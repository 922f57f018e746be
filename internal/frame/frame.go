// Package frame implements the TOON line framer: it normalizes line
// endings, measures indentation against the configured
// step, and yields (depth, content) frames to the decoder.
//
// The cursor discipline here — Peek/Advance/SkipBlank over a line index,
// with 1-based line numbers reported in errors — is scaled down from a rune
// cursor to a line cursor: TOON's grammar only ever needs to recognize
// indentation, not a token stream, so there is no token buffer here;
// PeekN looks ahead by whole lines.
package frame

import (
	"strings"

	"github.com/go-toon/toon/pkg/toonopts"
)

// Frame is one line of the document, with its indentation measured off as
// Depth and stripped from Content. A whitespace-only line is reported with
// Blank set and only Line filled in.
type Frame struct {
	Depth   int
	Content string
	Line    int // 1-based source line number
	Blank   bool
}

// Framer walks a document's lines, tracking indentation depth.
type Framer struct {
	lines  []string
	opts   toonopts.Options
	pos    int // index into lines of the next unconsumed line
	errors []error
}

// New builds a Framer over data. CRLF and CR are normalized to LF; a
// single trailing empty line (the common "file ends with a newline" case)
// is discarded.
func New(data []byte, opts toonopts.Options) *Framer {
	text := string(data)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return &Framer{lines: lines, opts: opts}
}

// Err returns the first indentation error recorded while scanning, if any.
func (f *Framer) Err() error {
	if len(f.errors) == 0 {
		return nil
	}
	return f.errors[0]
}

func (f *Framer) frameAt(idx int) (Frame, bool) {
	if idx < 0 || idx >= len(f.lines) {
		return Frame{}, false
	}
	raw := f.lines[idx]
	line := idx + 1

	if strings.TrimSpace(raw) == "" {
		return Frame{Line: line, Blank: true}, true
	}

	spaceCount, tabSeen := 0, false
	for _, r := range raw {
		switch r {
		case ' ':
			spaceCount++
		case '\t':
			tabSeen = true
			spaceCount++
		default:
			goto counted
		}
	}
counted:

	if f.opts.Strict {
		if tabSeen {
			f.recordError(line, "Invalid indentation")
		} else if spaceCount%f.opts.IndentSize != 0 {
			f.recordError(line, "Invalid indentation")
		}
	}

	depth := spaceCount / f.opts.IndentSize
	content := raw[spaceCount:]
	return Frame{Depth: depth, Content: content, Line: line}, true
}

func (f *Framer) recordError(line int, msg string) {
	f.errors = append(f.errors, &indentError{line: line, msg: msg})
}

// LineError is implemented by errors that carry a source line number.
type LineError interface {
	error
	Line() int
}

type indentError struct {
	line int
	msg  string
}

func (e *indentError) Error() string { return e.msg }

// Line returns the 1-based source line number of the error, for DecodeError
// construction.
func (e *indentError) Line() int { return e.line }

// Peek returns the next frame (blank or not) without consuming it.
func (f *Framer) Peek() (Frame, bool) {
	return f.frameAt(f.pos)
}

// PeekN returns the nth frame ahead (0 = next), without consuming.
func (f *Framer) PeekN(n int) (Frame, bool) {
	return f.frameAt(f.pos + n)
}

// Advance consumes and returns the next frame.
func (f *Framer) Advance() (Frame, bool) {
	fr, ok := f.frameAt(f.pos)
	if ok {
		f.pos++
	}
	return fr, ok
}

// SkipBlank consumes leading blank frames, returning how many were
// skipped.
func (f *Framer) SkipBlank() int {
	skipped := 0
	for {
		fr, ok := f.Peek()
		if !ok || !fr.Blank {
			return skipped
		}
		f.Advance()
		skipped++
	}
}

// AtEnd reports whether every line has been consumed.
func (f *Framer) AtEnd() bool {
	return f.pos >= len(f.lines)
}

// NonBlankCount returns the number of non-blank lines in the whole
// document, used by the decoder's root-form dispatch (a lone primitive
// line is only legal in strict mode if it's the only non-blank line).
func (f *Framer) NonBlankCount() int {
	count := 0
	for _, l := range f.lines {
		if strings.TrimSpace(l) != "" {
			count++
		}
	}
	return count
}
