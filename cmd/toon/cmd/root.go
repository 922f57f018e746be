// Package cmd implements the toon command-line tool: encode/decode between
// TOON documents and JSON/YAML, plus gjson/sjson-powered query and patch
// commands, built on cobra.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "toon",
	Short: "TOON codec command-line tool",
	Long: `toon encodes and decodes TOON ("The Object-Oriented Notation")
documents: a text format that shares JSON's data model with
indentation-based configuration ergonomics and tabular density for arrays
of homogeneous records.

  toon encode config.json > config.toon
  toon decode config.toon > config.json
  toon query users.0.name config.toon
  toon set server.port 9090 config.toon`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// readInput resolves the bytes to process for a command that accepts an
// optional file argument plus an -e/--eval inline override, falling back to
// standard input when neither is given. filename is one of the argument
// path, "<eval>", or "<stdin>", used for error messages and to reject -w
// when there is no source file to write back to.
func readInput(eval string, args []string) (data []byte, filename string, err error) {
	switch {
	case eval != "":
		return []byte(eval), "<eval>", nil
	case len(args) == 1:
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, args[0], fmt.Errorf("reading %s: %w", args[0], err)
		}
		return data, args[0], nil
	default:
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "<stdin>", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
}
