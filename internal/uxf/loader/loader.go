// Package loader wires the lexer, parser, import resolver, validator and
// writer into the library's four public entry points: Load, LoadFile, Dump
// and DumpFile. A single function reads options, runs the phases in
// sequence, and routes every diagnostic through one callback before
// returning.
package loader

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/uxf-lang/uxf/internal/uxf/diag"
	"github.com/uxf-lang/uxf/internal/uxf/importresolver"
	"github.com/uxf-lang/uxf/internal/uxf/lexer"
	"github.com/uxf-lang/uxf/internal/uxf/model"
	"github.com/uxf-lang/uxf/internal/uxf/parser"
	"github.com/uxf-lang/uxf/internal/uxf/validator"
	"github.com/uxf-lang/uxf/internal/uxf/writer"
)

const bom = "\xEF\xBB\xBF"

// Options configures a Load/LoadFile call.
type Options struct {
	// Filename is attached to diagnostics and used as the base for
	// resolving relative imports.
	Filename string
	// Handler receives every diagnostic reported while loading. A nil
	// Handler means diagnostics are only available via the returned
	// diag.DiagnosticList.
	Handler diag.Handler
	// ValidatorMode selects strict rejection or best-effort type coercion.
	ValidatorMode validator.Mode
	// DropUnusedTTypes removes ttypes no value in the document references,
	// after warning about them.
	DropUnusedTTypes bool
	// SkipValidation bypasses the validator entirely, returning the raw
	// parsed tree. Used by callers (the gzip, gunzip and inline commands)
	// that re-emit a document without validating it.
	SkipValidation bool
}

// Result is the outcome of a Load/LoadFile call.
type Result struct {
	Document    *model.Document
	Diagnostics diag.DiagnosticList
}

// Load parses UXF text (already gunzipped by the caller if necessary --
// LoadFile does this automatically; a leading UTF-8 BOM is stripped here)
// into a Document, runs
// import resolution and validation, and returns the result alongside every
// diagnostic reported.
func Load(text string, opts Options) Result {
	text = stripBOM(text)

	sink := diag.NewSink(opts.Handler, opts.Filename)

	tokens, lexErrs := lexer.New(text).ScanTokens()
	for _, le := range lexErrs {
		code := diag.CodeLexSyntax
		if le.Code != "" {
			code = diag.Code(le.Code)
		}
		sink.Report(diag.New(code, diag.CategoryLex, le.Message, le.Line, le.Column))
	}

	resolver := importresolver.New(importresolver.Options{Sink: sink})
	p := parser.New(tokens, sink, parser.Options{Filename: opts.Filename, Importer: resolver})
	doc := p.Parse()

	if !opts.SkipValidation {
		v := validator.New(doc, sink, validator.Options{
			Mode:       opts.ValidatorMode,
			DropUnused: opts.DropUnusedTTypes,
		})
		v.Check()
	}

	return Result{Document: doc, Diagnostics: sink.List()}
}

// LoadFile reads path (transparently gunzipping a `.gz` suffix or gzip
// magic bytes), strips a UTF-8 BOM if present, and loads the result.
func LoadFile(path string, opts Options) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	decoded, err := decompress(path, raw)
	if err != nil {
		return Result{}, err
	}
	if opts.Filename == "" {
		opts.Filename = path
	}
	return Load(string(decoded), opts), nil
}

// Dump renders doc to canonical UXF text under format (nil uses
// writer.DefaultFormat()).
func Dump(doc *model.Document, format *writer.Format) string {
	return writer.Write(doc, format)
}

// DumpFile renders doc and writes it to path, gzip-compressing when path
// ends in `.gz`. File handles and gzip streams are closed
// on every exit path.
func DumpFile(doc *model.Document, path string, format *writer.Format) error {
	text := Dump(doc, format)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		gw := gzip.NewWriter(f)
		defer gw.Close()
		if _, err := gw.Write([]byte(text)); err != nil {
			return err
		}
		return nil
	}

	_, err = f.WriteString(text)
	return err
}

// stripBOM consumes a leading UTF-8 BOM without re-emitting it.
func stripBOM(text string) string {
	return strings.TrimPrefix(text, bom)
}

// decompress gunzips raw when path ends in `.gz` or the bytes carry the
// gzip magic header.
func decompress(path string, raw []byte) ([]byte, error) {
	if !strings.HasSuffix(path, ".gz") && !looksGzipped(raw) {
		return raw, nil
	}
	gr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	defer gr.Close()
	out, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return out, nil
}

func looksGzipped(raw []byte) bool {
	return len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b
}
