// Package toonopts holds the immutable configuration shared by the TOON
// encoder and decoder together with the canonical-primitive rules both
// directions must agree on: number formatting, string quoting, string
// escaping, and key-identifier tests.
package toonopts

// KeyFolding controls whether the encoder may collapse chains of
// single-child objects into dotted keys.
type KeyFolding int

const (
	KeyFoldingOff KeyFolding = iota
	KeyFoldingSafe
)

// ExpandPaths controls whether the decoder expands dotted keys into nested
// objects.
type ExpandPaths int

const (
	ExpandPathsOff ExpandPaths = iota
	ExpandPathsSafe
)

// Unbounded marks FlattenDepth as having no limit.
const Unbounded = -1

// Options is the immutable configuration bundle threaded through the
// decoder, encoder, header parser, and line framer. Build one with New;
// the zero value of Options is not meaningful on its own (use Default()
// or New() to get the documented defaults).
type Options struct {
	IndentSize   int
	Delimiter    rune
	Strict       bool
	KeyFolding   KeyFolding
	FlattenDepth int // Unbounded for +∞
	ExpandPaths  ExpandPaths
}

// Default returns the options in force when no Option is supplied:
// 2-space indent, comma delimiter, strict mode, no key folding, no path
// expansion, unbounded flatten depth.
func Default() Options {
	return Options{
		IndentSize:   2,
		Delimiter:    ',',
		Strict:       true,
		KeyFolding:   KeyFoldingOff,
		FlattenDepth: Unbounded,
		ExpandPaths:  ExpandPathsOff,
	}
}

// Option mutates an Options value under construction. Following the
// teacher's lexer option pattern, construction and mutation are separated:
// an Option is a closure applied once inside New, after which the returned
// Options is never mutated in place.
type Option func(*Options)

// WithIndentSize sets the number of spaces per indentation level. Values
// less than 1 are ignored (the default of 2 is kept).
func WithIndentSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.IndentSize = n
		}
	}
}

// WithDelimiter sets the document delimiter (one of ',', '\t', '|').
// Any other rune is ignored.
func WithDelimiter(d rune) Option {
	return func(o *Options) {
		if d == ',' || d == '\t' || d == '|' {
			o.Delimiter = d
		}
	}
}

// WithStrict toggles strict-mode validation.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithKeyFolding sets the encoder's key-folding mode.
func WithKeyFolding(mode KeyFolding) Option {
	return func(o *Options) { o.KeyFolding = mode }
}

// WithFlattenDepth bounds the number of dotted segments a folded key may
// have. Pass Unbounded for no limit.
func WithFlattenDepth(depth int) Option {
	return func(o *Options) {
		if depth == Unbounded || depth > 0 {
			o.FlattenDepth = depth
		}
	}
}

// WithExpandPaths sets the decoder's dotted-path expansion mode.
func WithExpandPaths(mode ExpandPaths) Option {
	return func(o *Options) { o.ExpandPaths = mode }
}

// New builds an immutable Options value, applying opts over Default().
func New(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
