// Package main is the entry point for the daily CLI.
package main

import (
	"os"

	"github.com/thoreinstein/daily/cmd/daily/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(commands.Report(os.Stderr, err))
	}
}
