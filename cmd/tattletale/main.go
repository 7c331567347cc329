package main

import (
	"fmt"
	"os"
)

// Version information (set by ldflags during build)
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
