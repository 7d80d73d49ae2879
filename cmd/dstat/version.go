package main

import (
	"fmt"
	"io"
	"runtime"
)

// Build-time variables set by go build -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// printVersion writes the version line and, with full set, the build
// details.
func printVersion(w io.Writer, full bool) {
	fmt.Fprintf(w, "dstat %s\n", version)
	if !full {
		return
	}
	fmt.Fprintf(w, "  commit:  %s\n", commit)
	fmt.Fprintf(w, "  built:   %s\n", date)
	fmt.Fprintf(w, "  go:      %s\n", runtime.Version())
	fmt.Fprintf(w, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
