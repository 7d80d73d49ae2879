// Package main provides the entry point for the dstat directory entry
// counter.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jamesainslie/dstat/pkg/dstat/logging"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

func main() {
	err := Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	_ = logging.Close()
	os.Exit(types.ExitCode(err))
}

// printError writes the single line reported for a fatal error.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
