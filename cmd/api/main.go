// Package main starts the collaboration-graph API server. It loads the
// exhibition dataset into an immutable in-memory graph and serves filtered
// projections of it over HTTP and WebSocket for the browser-side renderer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "collabscope",
		Short:   "Collabscope - collaboration graph API",
		Long:    "Collabscope serves threshold-filtered views of an artist collaboration\ngraph built from historical exhibition records.",
		Version: version,
	}

	rootCmd.AddCommand(newServeCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
