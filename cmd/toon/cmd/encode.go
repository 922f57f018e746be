package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-toon/toon/pkg/encoder"
)

var (
	encodeFlags     codecFlags
	encodeInFormat  string
	encodeWrite     bool
	encodeEvalInput string
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode a JSON or YAML document as TOON",
	Long: `encode reads a structured document (JSON by default, or YAML with
--format yaml) and writes the equivalent TOON document to standard output.

  toon encode config.json > config.toon
  toon encode --format yaml config.yaml > config.toon
  cat config.json | toon encode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	addCodecFlags(encodeCmd, &encodeFlags, true, false)
	encodeCmd.Flags().StringVar(&encodeInFormat, "format", "json", "input format: json or yaml")
	encodeCmd.Flags().BoolVarP(&encodeWrite, "write", "w", false, "write result back to the source file instead of stdout")
	encodeCmd.Flags().StringVarP(&encodeEvalInput, "eval", "e", "", "encode the given inline document instead of reading a file")
}

func runEncode(cmd *cobra.Command, args []string) error {
	data, filename, err := readInput(encodeEvalInput, args)
	if err != nil {
		return err
	}
	if encodeWrite && (filename == "<stdin>" || filename == "<eval>") {
		return fmt.Errorf("-w requires a source file, not stdin or -e")
	}

	inFormat, err := parseFormat(encodeInFormat)
	if err != nil {
		return err
	}
	v, err := decodeStructured(data, inFormat)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	opts, err := encodeFlags.options()
	if err != nil {
		return err
	}
	out, err := encoder.New(opts).Encode(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}

	if encodeWrite {
		if verbose {
			fmt.Fprintf(os.Stderr, "encoded %s\n", filename)
		}
		return os.WriteFile(filename, out, 0644)
	}
	_, err = os.Stdout.Write(out)
	return err
}
