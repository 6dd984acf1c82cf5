// Package main provides the jsdocgen CLI.
package main

import (
	"os"

	"github.com/example/jsdoc-gen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
