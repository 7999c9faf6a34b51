// Package main is the entry point for the pcdump CLI.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/pctable/internal/cli"
)

// Build-time variables, set with -ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit})
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err)
		return 1
	}
	return 0
}
