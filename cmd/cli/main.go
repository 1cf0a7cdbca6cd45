// Package main is the entry point for tyre-cost CLI.
package main

import (
	"fmt"
	"os"

	"tyre-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
