// Package main provides the cxblueprint CLI application
package main

import (
	"os"

	"github.com/NC1107/CxBlueprint/internal/cli"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersion(Version, Commit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
