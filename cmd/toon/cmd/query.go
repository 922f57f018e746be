package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/go-toon/toon/internal/decoder"
)

var (
	queryFlags     codecFlags
	queryRaw       bool
	queryEvalInput string
)

var queryCmd = &cobra.Command{
	Use:   "query <path> [file]",
	Short: "Query a TOON document with a gjson path expression",
	Long: `query decodes a TOON document to its JSON form and evaluates a
gjson path expression against it, printing the matched value.

  toon query users.0.name config.toon
  toon query "users.#.name" config.toon
  cat config.toon | toon query server.port`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	addCodecFlags(queryCmd, &queryFlags, false, true)
	queryCmd.Flags().BoolVar(&queryRaw, "raw", false, "print the raw matched text instead of its String() form")
	queryCmd.Flags().StringVarP(&queryEvalInput, "eval", "e", "", "query the given inline document instead of reading a file")
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, filename, err := readInput(queryEvalInput, args[1:])
	if err != nil {
		return err
	}

	opts, err := queryFlags.options()
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

	result := gjson.GetBytes(jsonBytes, path)
	if !result.Exists() {
		return fmt.Errorf("path %q matched nothing in %s", path, filename)
	}

	if queryRaw {
		fmt.Println(result.Raw)
	} else {
		fmt.Println(result.String())
	}
	return nil
}
