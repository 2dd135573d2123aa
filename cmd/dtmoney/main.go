// Package main is the entry point for the dtmoney CLI.
package main

import (
	"os"

	"github.com/ichikawacraice/dt-money/cmd/dtmoney/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
