// Package diag provides structured diagnostics for the UXF toolchain: error
// codes, categories, severities, and a pluggable Handler callback that lets
// a caller receive (line, code, message, filename, fatal) for every problem
// encountered while loading or validating a document.
package diag

import "fmt"

// Category groups a Code by processing phase.
type Category string

const (
	CategoryLex      Category = "lex"
	CategoryParse    Category = "parse"
	CategoryType     Category = "type"
	CategoryImport   Category = "import"
	CategoryWarning  Category = "warning"
)

// Severity indicates whether a Diagnostic is fatal or advisory.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single structured problem report, the payload passed to a
// Handler and accumulated into a DiagnosticList.
type Diagnostic struct {
	Code     Code
	Category Category
	Severity Severity
	Message  string
	Line     int
	Column   int
	File     string
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped anywhere ordinary errors are expected.
func (d *Diagnostic) Error() string {
	return Format(d, false)
}

// WithFile sets the source filename the diagnostic belongs to.
func (d *Diagnostic) WithFile(file string) *Diagnostic {
	d.File = file
	return d
}

// IsFatal reports whether this diagnostic should stop processing.
func (d *Diagnostic) IsFatal() bool { return d.Severity == SeverityFatal }

// New builds a fatal Diagnostic.
func New(code Code, category Category, message string, line, column int) *Diagnostic {
	return &Diagnostic{Code: code, Category: category, Severity: SeverityFatal, Message: message, Line: line, Column: column}
}

// NewWarning builds a non-fatal Diagnostic.
func NewWarning(code Code, category Category, message string, line, column int) *Diagnostic {
	return &Diagnostic{Code: code, Category: category, Severity: SeverityWarning, Message: message, Line: line, Column: column}
}

// DiagnosticList is an accumulated collection of diagnostics from one
// loading or validation pass.
type DiagnosticList []*Diagnostic

// Error implements the error interface.
func (dl DiagnosticList) Error() string {
	if len(dl) == 0 {
		return "no diagnostics"
	}
	return FormatList(dl, false)
}

// HasFatal reports whether the list contains a fatal diagnostic.
func (dl DiagnosticList) HasFatal() bool {
	for _, d := range dl {
		if d.IsFatal() {
			return true
		}
	}
	return false
}

// Counts returns the number of fatal and warning diagnostics.
func (dl DiagnosticList) Counts() (fatal, warnings int) {
	for _, d := range dl {
		if d.IsFatal() {
			fatal++
		} else {
			warnings++
		}
	}
	return
}

// Handler is the pluggable callback contract every phase (lexer, parser,
// validator, import resolver) reports through: line number, stable code,
// human message, source filename, and whether the problem is fatal. A nil
// Handler is valid and means "accumulate into the Sink only."
type Handler func(line int, code Code, message string, filename string, fatal bool)

// Sink pairs an injected Handler with the running fatal/file state that
// needs to be threaded down the lexer -> parser -> validator call stack
// (the format's handler contract is a plain callback, not an exception, so
// fatal propagation is carried explicitly rather than by unwinding).
type Sink struct {
	Handler  Handler
	filename string
	fatal    bool
	list     DiagnosticList
}

// NewSink creates a Sink reporting through the given Handler (which may be
// nil) for the named source file.
func NewSink(h Handler, filename string) *Sink {
	return &Sink{Handler: h, filename: filename}
}

// Report records a diagnostic: appends it to the accumulated list, latches
// Fatal if the diagnostic is fatal, and invokes the Handler if one was
// supplied.
func (s *Sink) Report(d *Diagnostic) {
	d.File = s.filename
	s.list = append(s.list, d)
	if d.IsFatal() {
		s.fatal = true
	}
	if s.Handler != nil {
		s.Handler(d.Line, d.Code, d.Message, d.File, d.IsFatal())
	}
}

// Fatal reports whether any diagnostic reported so far was fatal.
func (s *Sink) Fatal() bool { return s.fatal }

// List returns every diagnostic reported through this sink so far.
func (s *Sink) List() DiagnosticList { return s.list }

// Filename returns the source filename this sink reports diagnostics for.
func (s *Sink) Filename() string { return s.filename }

func documentationHint(code Code) string {
	return fmt.Sprintf("see the UXF error reference for %s", code)
}
