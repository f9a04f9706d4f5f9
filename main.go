// Package main is the entry point for the holocron API server and its
// maintenance commands.
package main

import (
	"fmt"
	"os"

	v1 "github.com/holocron-api/api/v1"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	v1.Version = version

	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
