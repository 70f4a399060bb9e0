// Package main is the entry point for the mdread CLI.
package main

import (
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/mdread/internal/cli"
	"github.com/kk-code-lab/mdread/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Fall back to UTF-8 when the locale names no usable encoding.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
		return 1
	}
	return 0
}
