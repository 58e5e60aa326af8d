package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uxf-lang/uxf/internal/uxf/loader"
	"github.com/uxf-lang/uxf/internal/uxf/writer"
)

var inlineOutput string

func init() {
	inlineCmd.Flags().StringVarP(&inlineOutput, "output", "o", "", "Write the result here instead of stdout")
}

var inlineCmd = &cobra.Command{
	Use:   "inline <file.uxf>",
	Short: "Expand imports into inline ttype definitions",
	Long: `Resolve every import a document declares and rewrite it with those
ttypes defined locally instead of imported,
producing a document that no longer depends on UXF_PATH or network access.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		result, err := loader.LoadFile(path, loader.Options{SkipValidation: true})
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if result.Diagnostics.HasFatal() {
			return fmt.Errorf("%s failed to parse", path)
		}

		format := writer.DefaultFormat()
		format.ReplaceImports = true
		text := loader.Dump(result.Document, format)

		if inlineOutput == "" {
			fmt.Print(text)
			return nil
		}
		return os.WriteFile(inlineOutput, []byte(text), 0644)
	},
}
