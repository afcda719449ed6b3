package main

import (
	"github.com/urfave/cli/v3"
)

// getCommands lists every subcommand: system maintenance first, then registry administration.
func getCommands(version string) []*cli.Command {
	return append(getSystemCommands(version), getRegistryCommands()...)
}
