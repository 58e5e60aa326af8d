package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uxf-lang/uxf/internal/cli/ui"
	"github.com/uxf-lang/uxf/internal/uxf/loader"
)

var (
	gzipOutput   string
	gunzipOutput string
	gzipNoColor  bool
)

func init() {
	gzipCmd.Flags().StringVarP(&gzipOutput, "output", "o", "", "Output path (default: <file>.gz)")
	gzipCmd.Flags().BoolVar(&gzipNoColor, "no-color", false, "Disable colored diagnostics")
	gunzipCmd.Flags().StringVarP(&gunzipOutput, "output", "o", "", "Output path (default: <file> with .gz stripped)")
}

var gzipCmd = &cobra.Command{
	Use:   "gzip <file.uxf>",
	Short: "Write a gzip-compressed copy of a UXF document",
	Long:  "Parse a UXF document and write it back gzip-compressed.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		result, err := loader.LoadFile(path, loader.Options{SkipValidation: true})
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if result.Diagnostics.HasFatal() {
			ui.WriteError(os.Stderr, ui.ErrorOptions{
				Level:   ui.ErrorLevelError,
				Context: "PARSE FAILED",
				Problem: fmt.Sprintf("%s is not valid UXF, refusing to compress", path),
				NoColor: gzipNoColor,
			})
			return fmt.Errorf("%s failed to parse", path)
		}

		out := gzipOutput
		if out == "" {
			out = path + ".gz"
		}
		if err := loader.DumpFile(result.Document, out, nil); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		ui.WriteSuccess(os.Stdout, fmt.Sprintf("wrote %s", out), gzipNoColor)
		return nil
	},
}

var gunzipCmd = &cobra.Command{
	Use:   "gunzip <file.uxf.gz>",
	Short: "Uncompress a gzip-compressed UXF document",
	Long:  "Parse a gzip-compressed UXF document and write it back as plain text.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		result, err := loader.LoadFile(path, loader.Options{SkipValidation: true})
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if result.Diagnostics.HasFatal() {
			ui.WriteError(os.Stderr, ui.ErrorOptions{
				Level:   ui.ErrorLevelError,
				Context: "PARSE FAILED",
				Problem: fmt.Sprintf("%s is not valid UXF, refusing to uncompress", path),
				NoColor: gzipNoColor,
			})
			return fmt.Errorf("%s failed to parse", path)
		}

		out := gunzipOutput
		if out == "" {
			out = strings.TrimSuffix(path, ".gz")
			if out == path {
				out = path + ".uxf"
			}
		}
		if err := loader.DumpFile(result.Document, out, nil); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		ui.WriteSuccess(os.Stdout, fmt.Sprintf("wrote %s", out), gzipNoColor)
		return nil
	},
}
