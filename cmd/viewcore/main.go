// Command viewcore exercises the view/model projection and cursor engine
// from the command line.
package main

import (
	"os"
)

// Version info (set by ldflags).
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}
