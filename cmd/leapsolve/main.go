// Package main is the leapsolve command.
package main

import (
	"os"

	"github.com/leapstack-labs/leapsolve/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
