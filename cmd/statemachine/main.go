// Command statemachine is the CLI entry point: it loads config.yaml and its
// encrypted secrets.yaml sibling, then drives a named pipeline over one or
// more work items, per SPEC_FULL.md §6.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(runExitCode)
}
