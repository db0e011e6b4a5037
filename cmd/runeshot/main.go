package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"runeshot/internal/netutil"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps command errors to process exit statuses. Transient network
// failures get a distinct status so a supervisor can restart quietly.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case netutil.IsTransient(err):
		return netutil.ExitTransient
	default:
		return 1
	}
}
