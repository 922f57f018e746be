package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-toon/toon/pkg/toonopts"
)

// codecFlags holds the raw flag values a command turns into a
// toonopts.Options, shared by every subcommand that builds or consumes a
// TOON document.
type codecFlags struct {
	indentSize   int
	delimiter    string
	strict       bool
	keyFolding   string
	flattenDepth int
	expandPaths  string
}

// addCodecFlags registers the flags common to every codec-facing command
// (indent, delimiter, strict), plus the encoder-only (key-folding,
// flatten-depth) and decoder-only (expand-paths) flags when requested.
func addCodecFlags(cmd *cobra.Command, f *codecFlags, withEncodeFlags, withDecodeFlags bool) {
	cmd.Flags().IntVar(&f.indentSize, "indent", 2, "spaces per indentation level")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", ",", "array/tabular delimiter: comma, tab, or pipe")
	cmd.Flags().BoolVar(&f.strict, "strict", true, "enable strict structural validation")
	if withEncodeFlags {
		cmd.Flags().StringVar(&f.keyFolding, "key-folding", "off", "dotted-key folding: off or safe")
		cmd.Flags().IntVar(&f.flattenDepth, "flatten-depth", 0, "max folded key depth (0 = unbounded)")
	}
	if withDecodeFlags {
		cmd.Flags().StringVar(&f.expandPaths, "expand-paths", "off", "dotted-key expansion: off or safe")
	}
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case ",", "comma", "":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unknown delimiter %q (want comma, tab, or pipe)", s)
	}
}

// options builds a toonopts.Options from the parsed flag values, validating
// the string-enum flags (delimiter, key-folding, expand-paths) that cobra
// itself does not constrain.
func (f *codecFlags) options() (toonopts.Options, error) {
	delim, err := parseDelimiter(f.delimiter)
	if err != nil {
		return toonopts.Options{}, err
	}
	opts := []toonopts.Option{
		toonopts.WithIndentSize(f.indentSize),
		toonopts.WithDelimiter(delim),
		toonopts.WithStrict(f.strict),
	}

	switch f.keyFolding {
	case "", "off":
	case "safe":
		opts = append(opts, toonopts.WithKeyFolding(toonopts.KeyFoldingSafe))
	default:
		return toonopts.Options{}, fmt.Errorf("unknown --key-folding %q (want off or safe)", f.keyFolding)
	}
	if f.flattenDepth > 0 {
		opts = append(opts, toonopts.WithFlattenDepth(f.flattenDepth))
	}

	switch f.expandPaths {
	case "", "off":
	case "safe":
		opts = append(opts, toonopts.WithExpandPaths(toonopts.ExpandPathsSafe))
	default:
		return toonopts.Options{}, fmt.Errorf("unknown --expand-paths %q (want off or safe)", f.expandPaths)
	}

	return toonopts.New(opts...), nil
}
