// Package main provides the litetype CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/litetype/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
