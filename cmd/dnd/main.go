// Command dnd validates, replays and interactively hosts drag-and-drop
// scene files.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/dnd/cmd/dnd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
