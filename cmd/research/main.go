// Package main provides the research CLI, which analyzes a corpus of
// research papers and reports on them.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Build information, set with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if present (local development), ignore if missing
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
