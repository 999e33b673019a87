// Package main provides the entry point for the sdkmap CLI tool.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/sdkmap/sdkmap/cmd/sdkmap/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Signal handling so a Ctrl-C aborts in-flight fetches cleanly.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		// Exit 1 signals "mapping updated" to the surrounding automation,
		// which uses it to decide whether to commit the new output files.
		if errors.Is(err, app.ErrMapChanged) {
			os.Exit(1)
		}
		app.ExitOnError(err)
	}
}
