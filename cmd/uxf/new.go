package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/uxf-lang/uxf/internal/uxf/writer"
)

var newYes bool

func init() {
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "Accept every default without prompting")
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new UXF document and project config",
	Long:  "Create a uxf.yml project config and a starter .uxf document in the current directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if name == "" || strings.TrimSpace(name) == "" {
			return fmt.Errorf("document name cannot be empty")
		}
		if strings.Contains(name, "..") {
			return fmt.Errorf("document name cannot contain '..'")
		}
		if strings.Contains(name, "/") || strings.Contains(name, "\\") {
			return fmt.Errorf("document name cannot contain path separators")
		}
		if strings.HasPrefix(name, ".") {
			return fmt.Errorf("document name cannot start with '.'")
		}

		docPath := name + ".uxf"
		if _, err := os.Stat(docPath); err == nil {
			return fmt.Errorf("%s already exists", docPath)
		}

		useTrueFalse := false
		custom := ""
		if !newYes {
			if err := survey.AskOne(&survey.Confirm{
				Message: "Render booleans as true/false instead of yes/no?",
				Default: false,
			}, &useTrueFalse); err != nil {
				return err
			}
			if err := survey.AskOne(&survey.Input{
				Message: "Custom header string (leave blank for none):",
			}, &custom); err != nil {
				return err
			}
		}

		if !fileExists("uxf.yml") {
			format := writer.DefaultFormat()
			format.UseTrueFalse = useTrueFalse
			if err := writer.SaveFormat("uxf.yml", format); err != nil {
				return fmt.Errorf("writing uxf.yml: %w", err)
			}
			fmt.Println("created uxf.yml")
		}

		header := "uxf 1.0"
		if custom != "" {
			header += " " + custom
		}
		content := header + "\n[]\n"
		if err := os.WriteFile(docPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", docPath, err)
		}

		fmt.Printf("\ncreated %s\n\n", docPath)
		fmt.Println("Get started:")
		fmt.Printf("  uxf lint %s\n", docPath)
		fmt.Printf("  uxf pprint %s\n", docPath)
		return nil
	},
}

func fileExists(path string) bool {
	_, err := os.Stat(filepath.Clean(path))
	return err == nil
}
