package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/go-toon/toon/internal/decoder"
	"github.com/go-toon/toon/pkg/encoder"
	"github.com/go-toon/toon/pkg/toonopts"
)

var (
	setFlags codecFlags
	setRaw   bool
	setWrite bool
)

var setCmd = &cobra.Command{
	Use:   "set <path> <value> [file]",
	Short: "Patch a TOON document at a gjson path and print the result",
	Long: `set decodes a TOON document, applies a single sjson path patch, and
re-encodes the result as TOON.

value is parsed as a TOON/JSON primitive token (numbers, true/false/null,
or a bare string) unless --raw is given, in which case it is spliced in
verbatim as already-valid JSON (an object, array, or quoted string).

  toon set server.port 9090 config.toon
  toon set --raw 'tags' '["a","b"]' config.toon
  cat config.toon | toon set users.0.name Alice`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	addCodecFlags(setCmd, &setFlags, true, true)
	setCmd.Flags().BoolVar(&setRaw, "raw", false, "treat value as a pre-formed JSON fragment instead of a bare token")
	setCmd.Flags().BoolVarP(&setWrite, "write", "w", false, "write result back to the source file instead of stdout")
}

func runSet(cmd *cobra.Command, args []string) error {
	path, rawValue := args[0], args[1]
	data, filename, err := readInput("", args[2:])
	if err != nil {
		return err
	}
	if setWrite && filename == "<stdin>" {
		return fmt.Errorf("-w requires a source file, not stdin")
	}

	opts, err := setFlags.options()
	if err != nil {
		return err
	}

	v, err := decoder.New(data, opts).Decode()
	if err != nil {
		if decErr, ok := err.(*decoder.Error); ok {
			return fmt.Errorf("%s: %s", filename, decErr.Format())
		}
		return fmt.Errorf("%s: %w", filename, err)
	}

	jsonBytes, err := encodeStructured(v, formatJSON)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	var patched []byte
	if setRaw {
		patched, err = sjson.SetRawBytes(jsonBytes, path, []byte(rawValue))
	} else {
		patched, err = sjson.SetBytes(jsonBytes, path, literalToGo(rawValue))
	}
	if err != nil {
		return fmt.Errorf("patching %q: %w", path, err)
	}

	patchedValue, err := decodeStructured(patched, formatJSON)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	out, err := encoder.New(opts).Encode(patchedValue)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}

	if setWrite {
		if verbose {
			fmt.Fprintf(os.Stderr, "patched %s at %s\n", filename, path)
		}
		return os.WriteFile(filename, out, 0644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// literalToGo classifies a bare command-line value the same way the TOON
// decoder classifies an unquoted primitive token, so `toon set x 9090` sets
// an Int and `toon set x true` sets a Bool rather than always writing a
// string.
func literalToGo(s string) any {
	v, err := decoder.New([]byte(s), toonopts.Default()).Decode()
	if err != nil {
		return s
	}
	return toGeneric(v)
}
