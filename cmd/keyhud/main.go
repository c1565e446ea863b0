package main

import (
	"os"
	"runtime"

	"github.com/bnema/keyhud/internal/cli"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	// GTK requires its main loop on the thread the process started on.
	runtime.LockOSThread()
}

func main() {
	os.Exit(cli.Execute(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    buildDate,
	}))
}
