package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "uxf",
		Short: "UXF (Uniform eXchange Format) toolkit",
		Long: `uxf reads, validates, and writes Uniform eXchange Format documents:
a plain-text, human-readable, optionally-typed alternative to JSON, XML
and CSV.`,
	}

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pprintCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(gzipCmd)
	rootCmd.AddCommand(gunzipCmd)
	rootCmd.AddCommand(inlineCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(newCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
