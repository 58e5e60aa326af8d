package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/uxf-lang/uxf/internal/cli/ui"
	"github.com/uxf-lang/uxf/internal/uxf/loader"
	"github.com/uxf-lang/uxf/internal/uxf/validator"
)

var (
	watchFixTypes bool
	watchNoColor  bool
)

func init() {
	watchCmd.Flags().BoolVar(&watchFixTypes, "fix-types", false, "Coerce mismatched values instead of rejecting them")
	watchCmd.Flags().BoolVar(&watchNoColor, "no-color", false, "Disable colored diagnostics")
}

var watchCmd = &cobra.Command{
	Use:   "watch <file.uxf>",
	Short: "Re-lint a document every time it changes",
	Long:  "Watch a UXF file and re-run validation on every write, using fsnotify.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}

		lintOnce(path)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		fmt.Printf("watching %s, press Ctrl+C to stop\n", path)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					lintOnce(path)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			case <-sigChan:
				fmt.Println("\nstopping watch")
				return nil
			}
		}
	},
}

func lintOnce(path string) {
	mode := validator.ModeStrict
	if watchFixTypes {
		mode = validator.ModeFixTypes
	}

	result, err := loader.LoadFile(path, loader.Options{ValidatorMode: mode})
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
		return
	}

	if len(result.Diagnostics) == 0 {
		ui.WriteSuccess(os.Stdout, fmt.Sprintf("%s: no diagnostics", path), watchNoColor)
		return
	}
	for _, d := range result.Diagnostics {
		ui.WriteError(os.Stdout, diagnosticErrorOptions(d, watchNoColor))
	}
}
