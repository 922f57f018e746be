// Package toon implements the TOON ("The Object-Oriented Notation") codec:
// an encoder and decoder between a JSON-shaped Value tree and TOON's
// indentation-and-header text format. The package exposes a small public
// API (Decode/Encode and their string variants, plus the shared Options)
// while keeping the five cooperating components — options and canonical
// primitives, header parser, line framer, decoder, and encoder — in
// internal and pkg subpackages.
package toon

import (
	"github.com/go-toon/toon/internal/decoder"
	"github.com/go-toon/toon/pkg/encoder"
	"github.com/go-toon/toon/pkg/toonopts"
	"github.com/go-toon/toon/pkg/value"
)

// SpecVersion identifies the revision of the TOON document grammar this
// package implements.
const SpecVersion = "3.0"

// Value is the tagged-sum data model shared by TOON and JSON.
type Value = value.Value

// Kind identifies which Value variant a Value holds.
type Kind = value.Kind

// Re-exported Kind constants, for callers that need to branch on shape.
const (
	KindNull   = value.KindNull
	KindBool   = value.KindBool
	KindInt    = value.KindInt
	KindFloat  = value.KindFloat
	KindString = value.KindString
	KindArray  = value.KindArray
	KindObject = value.KindObject
)

// Null, Bool, Int, Float, String, NewArray, ArrayOf, and NewObject build
// Value trees; see package value for their documentation.
var (
	Null      = value.Null
	Bool      = value.Bool
	Int       = value.Int
	Float     = value.Float
	String    = value.String
	NewArray  = value.NewArray
	ArrayOf   = value.ArrayOf
	NewObject = value.NewObject
)

// Equal reports deep structural equality between two Values, including
// object field order — the property decode(encode(v)) == v relies on.
func Equal(a, b *Value) bool { return value.Equal(a, b) }

// Options is the immutable configuration bundle shared by Decode and
// Encode: indent size, delimiter, strict mode, key folding, flatten
// depth, and dotted-path expansion.
type Options = toonopts.Options

// Option mutates an Options value under construction.
type Option = toonopts.Option

// KeyFolding and ExpandPaths select the encoder's/decoder's dotted-key
// behavior; Delimiter identifies the active separator inside array scopes.
type KeyFolding = toonopts.KeyFolding
type ExpandPaths = toonopts.ExpandPaths
type Delimiter = rune

const (
	KeyFoldingOff  = toonopts.KeyFoldingOff
	KeyFoldingSafe = toonopts.KeyFoldingSafe
)

const (
	ExpandPathsOff  = toonopts.ExpandPathsOff
	ExpandPathsSafe = toonopts.ExpandPathsSafe
)

// Unbounded marks FlattenDepth as having no limit.
const Unbounded = toonopts.Unbounded

// DefaultOptions returns the options in force when no Option is supplied.
func DefaultOptions() Options { return toonopts.Default() }

// NewOptions builds an immutable Options value, applying opts over
// DefaultOptions().
func NewOptions(opts ...Option) Options { return toonopts.New(opts...) }

var (
	WithIndentSize   = toonopts.WithIndentSize
	WithDelimiter    = toonopts.WithDelimiter
	WithStrict       = toonopts.WithStrict
	WithKeyFolding   = toonopts.WithKeyFolding
	WithFlattenDepth = toonopts.WithFlattenDepth
	WithExpandPaths  = toonopts.WithExpandPaths
)

// Error is the single error kind decoding raises: a message paired with
// the 1-based source line it was detected on.
type Error = decoder.Error

// Decode parses a TOON document into a Value tree, or returns a *Error
// describing the first parse failure.
func Decode(data []byte, opts ...Option) (*Value, error) {
	return decoder.New(data, toonopts.New(opts...)).Decode()
}

// DecodeString is Decode over a string.
func DecodeString(s string, opts ...Option) (*Value, error) {
	return Decode([]byte(s), opts...)
}

// Encode renders v as a complete TOON document. The encoder never fails
// for in-domain input: non-finite floats normalize to null.
func Encode(v *Value, opts ...Option) ([]byte, error) {
	return encoder.New(toonopts.New(opts...)).Encode(v)
}

// EncodeString is Encode returning a string.
func EncodeString(v *Value, opts ...Option) (string, error) {
	b, err := Encode(v, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
