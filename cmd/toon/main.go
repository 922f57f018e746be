// Command toon encodes and decodes TOON documents from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/go-toon/toon/cmd/toon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
