// Package main provides the entry point for the pyprep CLI.
package main

import (
	"os"

	"github.com/felixgeelhaar/pyprep/internal/domain/bootstrap"
)

func main() {
	err := Execute()
	if err != nil {
		printError(err)
	}
	os.Exit(bootstrap.ExitCode(err))
}
