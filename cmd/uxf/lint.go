package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/uxf-lang/uxf/internal/cli/ui"
	"github.com/uxf-lang/uxf/internal/uxf/diag"
	"github.com/uxf-lang/uxf/internal/uxf/loader"
	"github.com/uxf-lang/uxf/internal/uxf/validator"
)

var (
	lintJSON       bool
	lintFixTypes   bool
	lintDropUnused bool
	lintListTTypes bool
	lintNoColor    bool
)

func init() {
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "Output diagnostics in JSON format")
	lintCmd.Flags().BoolVar(&lintFixTypes, "fix-types", false, "Coerce mismatched values to their declared vtype instead of rejecting them")
	lintCmd.Flags().BoolVar(&lintDropUnused, "drop-unused", false, "Drop ttypes no value references, after warning")
	lintCmd.Flags().BoolVar(&lintListTTypes, "list-ttypes", false, "List every ttype defined or imported by the document and exit")
	lintCmd.Flags().BoolVar(&lintNoColor, "no-color", false, "Disable colored diagnostics")
}

var lintCmd = &cobra.Command{
	Use:   "lint <file.uxf>",
	Short: "Validate a UXF document",
	Long:  "Lex, parse, resolve imports for, and type-check a UXF document, reporting every diagnostic.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		mode := validator.ModeStrict
		if lintFixTypes {
			mode = validator.ModeFixTypes
		}

		var result loader.Result
		spinErr := ui.WithSpinner(os.Stderr, "loading "+path, lintNoColor, func() error {
			var loadErr error
			result, loadErr = loader.LoadFile(path, loader.Options{
				ValidatorMode:    mode,
				DropUnusedTTypes: lintDropUnused,
			})
			return loadErr
		})
		if spinErr != nil {
			return fmt.Errorf("reading %s: %w", path, spinErr)
		}

		if lintListTTypes {
			names := result.Document.TClassNames()
			sort.Strings(names)
			table := ui.NewTable(os.Stdout, []string{"TTYPE", "FIELDS"}, &ui.TableOptions{NoColor: lintNoColor})
			for _, name := range names {
				tc, _ := result.Document.TClass(name)
				table.AddRow(name, fmt.Sprint(len(tc.Fields)))
			}
			table.Render()
			return nil
		}

		if lintJSON {
			return printDiagnosticsJSON(result.Diagnostics)
		}
		printDiagnosticsTerminal(result.Diagnostics)

		if result.Diagnostics.HasFatal() {
			fatal, warnings := result.Diagnostics.Counts()
			return fmt.Errorf("%s: %d error(s), %d warning(s)", path, fatal, warnings)
		}
		return nil
	},
}

func printDiagnosticsJSON(dl diag.DiagnosticList) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dl)
}

func printDiagnosticsTerminal(dl diag.DiagnosticList) {
	if len(dl) == 0 {
		ui.WriteSuccess(os.Stdout, "no diagnostics", lintNoColor)
		return
	}

	for _, d := range dl {
		opts := diagnosticErrorOptions(d, lintNoColor)
		if d.IsFatal() {
			ui.WriteError(os.Stderr, opts)
		} else {
			ui.WriteError(os.Stdout, opts)
		}
	}

	fatal, warnings := dl.Counts()
	fmt.Printf("\n%d error(s), %d warning(s)\n", fatal, warnings)
}

func diagnosticErrorOptions(d *diag.Diagnostic, noColor bool) ui.ErrorOptions {
	level := ui.ErrorLevelError
	if !d.IsFatal() {
		level = ui.ErrorLevelWarning
	}
	context := string(d.Category)
	if d.Line > 0 {
		return ui.ErrorOptions{
			Level:   level,
			Context: context,
			Problem: fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message),
			NoColor: noColor,
		}
	}
	return ui.ErrorOptions{
		Level:   level,
		Context: context,
		Problem: fmt.Sprintf("%s: %s", d.File, d.Message),
		NoColor: noColor,
	}
}
