// Package main provides the csvcode command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/csvcode/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
