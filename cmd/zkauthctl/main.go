package main

import (
	"fmt"
	"os"

	"github.com/zkauthd/zkauthd/cmd/zkauthctl/commands"
	"github.com/zkauthd/zkauthd/internal/cli/prompt"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		if prompt.IsAborted(err) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
