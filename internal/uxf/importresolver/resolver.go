package importresolver

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uxf-lang/uxf/internal/uxf/diag"
	"github.com/uxf-lang/uxf/internal/uxf/lexer"
	"github.com/uxf-lang/uxf/internal/uxf/model"
	"github.com/uxf-lang/uxf/internal/uxf/parser"
)

// pathListSeparator is ':' on POSIX and ';' on Windows for UXF_PATH.
const pathListSeparator = string(os.PathListSeparator)

// Options configures a Resolver.
type Options struct {
	// Sink receives diagnostics for every document fetched while resolving
	// imports (cycle, conflict, parse errors inside the imported text).
	Sink *diag.Sink
	// HTTPTimeout bounds a network fetch. Zero means the http package's
	// own defaults.
	HTTPTimeout time.Duration
	// HTTPClient, if set, is used for HTTP(S) sources instead of
	// constructing one from HTTPTimeout.
	HTTPClient *http.Client
}

// CycleError reports that source is already being resolved further up the
// same import chain. Callers can detect it with errors.As to distinguish a
// cycle from an ordinary not-found/fetch failure.
type CycleError struct {
	Source string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("import cycle detected at %s", e.Source)
}

// ImportCycle satisfies the unexported interface parser.go type-asserts
// against, letting it report diag.CodeImportCycle without importing this
// package (which would reintroduce the structural cycle ImportResolver's
// doc comment describes).
func (e *CycleError) ImportCycle() string {
	return e.Source
}

// Resolver implements parser.ImportResolver. It is stateful
// per top-level Load call: inFlight tracks sources currently being resolved
// so a cycle can be detected and reported instead of recursing forever.
type Resolver struct {
	opts     Options
	inFlight map[string]bool
	client   *http.Client
}

// New creates a Resolver for one top-level load. A fresh Resolver should be
// used per Load call so inFlight does not leak state across documents.
func New(opts Options) *Resolver {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.HTTPTimeout}
	}
	return &Resolver{
		opts:     opts,
		inFlight: make(map[string]bool),
		client:   client,
	}
}

// ResolveImports fetches source (relative to fromFile) and returns the
// TClasses it declares, recursively resolving its own imports first.
func (r *Resolver) ResolveImports(source, fromFile string) ([]*model.TClass, error) {
	key := canonicalKey(source, fromFile)
	if r.inFlight[key] {
		return nil, &CycleError{Source: source}
	}
	r.inFlight[key] = true
	defer delete(r.inFlight, key)

	if isSystemSource(source) {
		b, ok := SystemRegistry[source]
		if !ok {
			return nil, fmt.Errorf("unknown system import %q", source)
		}
		return []*model.TClass(b), nil
	}

	text, resolvedPath, err := r.fetch(source, fromFile)
	if err != nil {
		return nil, err
	}

	return r.parseTClasses(text, resolvedPath)
}

// parseTClasses lexes and parses an imported document's text, discarding
// its value/custom/comment and returning only its TClasses.
func (r *Resolver) parseTClasses(text, filename string) ([]*model.TClass, error) {
	sink := diag.NewSink(nil, filename)
	tokens, lexErrs := lexer.New(text).ScanTokens()
	for _, le := range lexErrs {
		code := diag.CodeLexSyntax
		if le.Code != "" {
			code = diag.Code(le.Code)
		}
		sink.Report(diag.New(code, diag.CategoryLex, le.Message, le.Line, le.Column))
	}

	p := parser.New(tokens, sink, parser.Options{Filename: filename, Importer: r})
	doc := p.Parse()

	if r.opts.Sink != nil {
		for _, d := range sink.List() {
			r.opts.Sink.Report(d)
		}
	}
	if sink.Fatal() {
		return nil, fmt.Errorf("errors parsing imported document %s", filename)
	}

	names := doc.TClassNames()
	tcs := make([]*model.TClass, 0, len(names))
	for _, name := range names {
		tc, _ := doc.TClass(name)
		tcs = append(tcs, tc)
	}
	return tcs, nil
}

// fetch resolves source against fromFile and returns its decompressed text
// plus a canonical path/URL used for nested relative resolution and
// diagnostics.
func (r *Resolver) fetch(source, fromFile string) (text, resolved string, err error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return r.fetchHTTP(source)
	}

	path, err := r.resolvePath(source, fromFile)
	if err != nil {
		return "", "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("import %q not found: %w", source, err)
	}
	decoded, err := maybeGunzip(path, raw)
	if err != nil {
		return "", "", err
	}
	return string(decoded), path, nil
}

// resolvePath implements the relative/absolute search order:
// (a) the importing file's directory, (b) each UXF_PATH entry, (c) the
// process's current working directory. An absolute path is used as-is.
func (r *Resolver) resolvePath(source, fromFile string) (string, error) {
	if filepath.IsAbs(source) {
		if fileExists(source) {
			return source, nil
		}
		return "", fmt.Errorf("import %q not found", source)
	}

	candidates := make([]string, 0, 4)
	if fromFile != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(fromFile), source))
	}
	for _, dir := range splitUxfPath(os.Getenv("UXF_PATH")) {
		candidates = append(candidates, filepath.Join(dir, source))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, source))
	}

	for _, c := range candidates {
		if fileExists(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("import %q not found on any search path", source)
}

func splitUxfPath(env string) []string {
	if env == "" {
		return nil
	}
	parts := strings.Split(env, pathListSeparator)
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// fetchHTTP retrieves a UXF document over HTTP(S).
func (r *Resolver) fetchHTTP(url string) (text, resolved string, err error) {
	resp, err := r.client.Get(url)
	if err != nil {
		return "", "", fmt.Errorf("fetching import %q: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetching import %q: HTTP %d", url, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading import %q: %w", url, err)
	}
	decoded, err := maybeGunzip(url, raw)
	if err != nil {
		return "", "", err
	}
	return string(decoded), url, nil
}

// maybeGunzip transparently decompresses a `.gz`-suffixed source.
func maybeGunzip(name string, raw []byte) ([]byte, error) {
	if !strings.HasSuffix(name, ".gz") {
		return raw, nil
	}
	gr, err := gzip.NewReader(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("decompressing import %q: %w", name, err)
	}
	defer gr.Close()
	out, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("decompressing import %q: %w", name, err)
	}
	return out, nil
}

// canonicalKey identifies a source for cycle detection independent of
// which importing file referenced it, so the same absolute file reached by
// two different relative paths is recognized as the same node.
func canonicalKey(source, fromFile string) string {
	if isSystemSource(source) {
		return "sys:" + source
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return "url:" + source
	}
	if filepath.IsAbs(source) {
		return "file:" + filepath.Clean(source)
	}
	if fromFile != "" {
		return "file:" + filepath.Clean(filepath.Join(filepath.Dir(fromFile), source))
	}
	return "file:" + source
}
