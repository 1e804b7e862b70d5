package main

import (
	"fmt"
	"os"

	"activity-flags/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// The CLI app wires the gateways named in the configuration into the
	// pipeline for every run; see internal/cli/wiring.go.
	app := cli.NewCLIApp(version)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
