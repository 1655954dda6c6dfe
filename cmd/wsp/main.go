// Package main provides the entry point for the wsp CLI.
package main

import (
	"os"

	"github.com/dshills/wsp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
