// Package main is the entry point for the airaware CLI.
package main

import (
	"os"

	"airaware/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
