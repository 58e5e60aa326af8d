package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Format renders a single diagnostic as a human-readable line plus a hint,
// colored red for fatal and yellow for warning when plain is false, plain
// text otherwise.
func Format(d *Diagnostic, plain bool) string {
	var b strings.Builder

	c := severityColor(d.Severity)
	if plain {
		c.DisableColor()
	}

	file := d.File
	if file == "" {
		file = "<source>"
	}

	c.Fprintf(&b, "%s %s:%d:%d: %s [%s]\n", severityLabel(d.Severity), file, d.Line, d.Column, d.Message, d.Code)
	fmt.Fprintf(&b, "  %s\n", documentationHint(d.Code))

	return b.String()
}

// FormatCompact renders a diagnostic as a single line with no trailing
// hint, suitable for `uxf lint --json`-adjacent terse output.
func FormatCompact(d *Diagnostic) string {
	file := d.File
	if file == "" {
		file = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s [%s]", file, d.Line, d.Column, d.Severity, d.Message, d.Code)
}

// FormatList renders every diagnostic in order, preceded by a one-line
// summary of fatal/warning counts.
func FormatList(dl DiagnosticList, plain bool) string {
	if len(dl) == 0 {
		return "no diagnostics"
	}

	var b strings.Builder
	fatal, warnings := dl.Counts()
	fmt.Fprintf(&b, "%d error(s), %d warning(s)\n\n", fatal, warnings)

	for i, d := range dl {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Format(d, plain))
	}

	return b.String()
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SeverityFatal:
		return color.New(color.FgRed, color.Bold)
	case SeverityWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func severityLabel(s Severity) string {
	switch s {
	case SeverityFatal:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
