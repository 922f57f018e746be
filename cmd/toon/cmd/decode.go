package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-toon/toon/internal/decoder"
)

var (
	decodeFlags      codecFlags
	decodeOutFormat  string
	decodeVerboseErr bool
	decodeEvalInput  string
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a TOON document to JSON or YAML",
	Long: `decode reads a TOON document and writes the equivalent structured
document (JSON by default, or YAML with --format yaml) to standard output.

  toon decode config.toon > config.json
  toon decode --format yaml config.toon > config.yaml
  cat config.toon | toon decode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	addCodecFlags(decodeCmd, &decodeFlags, false, true)
	decodeCmd.Flags().StringVar(&decodeOutFormat, "format", "json", "output format: json or yaml")
	decodeCmd.Flags().BoolVar(&decodeVerboseErr, "show-context", false, "show a source excerpt for decode errors")
	decodeCmd.Flags().StringVarP(&decodeEvalInput, "eval", "e", "", "decode the given inline document instead of reading a file")
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, filename, err := readInput(decodeEvalInput, args)
	if err != nil {
		return err
	}

	opts, err := decodeFlags.options()
	if err != nil {
		return err
	}

	v, err := decoder.New(data, opts).Decode()
	if err != nil {
		if decErr, ok := err.(*decoder.Error); ok {
			if decodeVerboseErr {
				return fmt.Errorf("%s: %s", filename, decErr.FormatWithContext())
			}
			return fmt.Errorf("%s: %s", filename, decErr.Format())
		}
		return fmt.Errorf("%s: %w", filename, err)
	}

	outFormat, err := parseFormat(decodeOutFormat)
	if err != nil {
		return err
	}
	out, err := encodeStructured(v, outFormat)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "decoded %s\n", filename)
	}
	_, err = os.Stdout.Write(out)
	return err
}
