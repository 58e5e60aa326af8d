package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uxf-lang/uxf/internal/cli/config"
	"github.com/uxf-lang/uxf/internal/cli/ui"
	"github.com/uxf-lang/uxf/internal/uxf/loader"
	"github.com/uxf-lang/uxf/internal/uxf/writer"
)

var (
	pprintOutput       string
	pprintCheck        bool
	pprintIndent       string
	pprintWrapWidth    int
	pprintRealDP       int
	pprintMaxShortLen  int
	pprintUseTrueFalse bool
	pprintNoColor      bool
)

func init() {
	pprintCmd.Flags().StringVarP(&pprintOutput, "output", "o", "", "Write the pretty-printed document here instead of stdout")
	pprintCmd.Flags().BoolVar(&pprintCheck, "check", false, "Exit non-zero if the file is not already in canonical form, without writing anything")
	pprintCmd.Flags().StringVar(&pprintIndent, "indent", "", "Per-level indent string (default two spaces)")
	pprintCmd.Flags().IntVar(&pprintWrapWidth, "wrap-width", 0, "Soft line-wrap target in columns (default 96)")
	pprintCmd.Flags().IntVar(&pprintRealDP, "realdp", -2, "Decimal digits for reals (default: minimal round-trip precision)")
	pprintCmd.Flags().IntVar(&pprintMaxShortLen, "max-short-len", 0, "Inline-vs-multiline threshold for containers (default 32)")
	pprintCmd.Flags().BoolVar(&pprintUseTrueFalse, "use-true-false", false, "Render bools as true/false instead of yes/no")
	pprintCmd.Flags().BoolVar(&pprintNoColor, "no-color", false, "Disable colored diagnostics")
}

var pprintCmd = &cobra.Command{
	Use:   "pprint <file.uxf>",
	Short: "Pretty-print a UXF document to its canonical form",
	Long:  "Load a UXF document and rewrite it using the canonical writer.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		result, err := loader.LoadFile(path, loader.Options{})
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if result.Diagnostics.HasFatal() {
			fatal, warnings := result.Diagnostics.Counts()
			ui.WriteError(os.Stderr, ui.ErrorOptions{
				Level:   ui.ErrorLevelError,
				Context: "PARSE FAILED",
				Problem: fmt.Sprintf("%s has %d fatal error(s) and %d warning(s)", path, fatal, warnings),
				NoColor: pprintNoColor,
			})
			return fmt.Errorf("cannot pretty-print %s: parsing failed", path)
		}

		format := pprintFormat()
		text := loader.Dump(result.Document, format)

		if pprintCheck {
			original, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if string(original) == text {
				ui.WriteSuccess(os.Stdout, fmt.Sprintf("%s is already canonical", path), pprintNoColor)
				return nil
			}
			return fmt.Errorf("%s is not in canonical form", path)
		}

		if pprintOutput == "" {
			fmt.Print(text)
			return nil
		}
		return os.WriteFile(pprintOutput, []byte(text), 0644)
	},
}

// pprintFormat merges project config defaults (uxf.yml) with any flags the
// caller explicitly set.
func pprintFormat() *writer.Format {
	f := writer.DefaultFormat()
	if cfg, err := config.Load(); err == nil {
		f.Indent = cfg.Format.Indent
		f.WrapWidth = cfg.Format.WrapWidth
		f.RealDP = cfg.Format.RealDP
		f.MaxShortLen = cfg.Format.MaxShortLen
		f.UseTrueFalse = cfg.Format.UseTrueFalse
	}

	if pprintIndent != "" {
		f.Indent = pprintIndent
	}
	if pprintWrapWidth != 0 {
		f.WrapWidth = pprintWrapWidth
	}
	if pprintRealDP != -2 {
		f.RealDP = pprintRealDP
	}
	if pprintMaxShortLen != 0 {
		f.MaxShortLen = pprintMaxShortLen
	}
	if pprintUseTrueFalse {
		f.UseTrueFalse = true
	}
	return f
}
