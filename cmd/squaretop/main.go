// Command squaretop renders running processes as a squarified treemap of
// memory consumption in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/gdanko/squaretop/cmd"
)

func main() {
	// cmd.Execute's own RunE path exits directly with the precise code for
	// startup/collector/terminal failures (spec.md §7); an error returned
	// here instead comes from cobra's own flag parsing, i.e. bad arguments.
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
