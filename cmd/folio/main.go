// Package main is the entry point for the folio content tool. It indexes
// a directory of Markdown posts, tabs and music entries, serves a JSON
// preview API over them and publishes the generated index.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
