// Package main provides the dumpcsv command.
package main

import (
	"os"

	"github.com/leapstack-labs/dumpcsv/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
