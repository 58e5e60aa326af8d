// Package uxf is the public surface of a UXF (Uniform eXchange Format)
// reader/writer: Load/LoadFile parse UXF text into a Document; Dump/
// DumpFile render a Document back to canonical UXF text. Everything here
// is a thin facade over internal/uxf/{model,loader,writer}: a stable,
// documented surface sitting in front of internal implementation packages.
package uxf

import (
	"github.com/uxf-lang/uxf/internal/uxf/diag"
	"github.com/uxf-lang/uxf/internal/uxf/loader"
	"github.com/uxf-lang/uxf/internal/uxf/model"
	"github.com/uxf-lang/uxf/internal/uxf/validator"
	"github.com/uxf-lang/uxf/internal/uxf/writer"
)

// Document is the root of an in-memory UXF tree.
type Document = model.Document

// Value is a single UXF scalar or collection handle.
type Value = model.Value

// List, Map, Table, TClass and Field are the container/schema types a
// Document is built from.
type (
	List   = model.List
	Map    = model.Map
	Table  = model.Table
	TClass = model.TClass
	Field  = model.Field
)

// Date and DateTime are the two calendar/timestamp scalar kinds.
type (
	Date     = model.Date
	DateTime = model.DateTime
)

// Format configures canonical UXF output.
type Format = writer.Format

// DefaultFormat returns the library's default output configuration.
func DefaultFormat() *Format { return writer.DefaultFormat() }

// LoadFormat/SaveFormat persist a Format as YAML, the way an embedding
// project's uxf.yml records its preferred pretty-printing options.
var (
	LoadFormat = writer.LoadFormat
	SaveFormat = writer.SaveFormat
)

// Handler is the pluggable (line, code, message, filename, fatal) callback
// every load/dump call can be configured with.
type Handler = diag.Handler

// ValidatorMode selects strict rejection or best-effort type coercion
// during validation.
type ValidatorMode = validator.Mode

const (
	ModeStrict   = validator.ModeStrict
	ModeFixTypes = validator.ModeFixTypes
)

// LoadOptions configures a Load/LoadFile call.
type LoadOptions = loader.Options

// LoadResult is the outcome of a Load/LoadFile call: the parsed Document
// plus every diagnostic reported while loading it.
type LoadResult = loader.Result

// Load parses UXF text into a Document, running import resolution and
// validation. Diagnostics are returned in the result and, if opts.Handler
// is set, also streamed through it as they occur.
func Load(text string, opts LoadOptions) LoadResult {
	return loader.Load(text, opts)
}

// LoadFile reads and loads a UXF document from disk, transparently
// gunzipping a `.gz` source and stripping a leading BOM.
func LoadFile(path string, opts LoadOptions) (LoadResult, error) {
	return loader.LoadFile(path, opts)
}

// Dump renders doc as canonical UXF text. A nil format uses
// DefaultFormat().
func Dump(doc *Document, format *Format) string {
	return loader.Dump(doc, format)
}

// DumpFile renders doc and writes it to path, gzip-compressing when path
// ends in `.gz`.
func DumpFile(doc *Document, path string, format *Format) error {
	return loader.DumpFile(doc, path, format)
}

// NewDocument creates an empty Document at the current supported format
// version.
func NewDocument() *Document { return model.NewDocument() }
