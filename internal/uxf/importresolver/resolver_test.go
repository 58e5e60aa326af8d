package importresolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/uxf-lang/uxf/internal/uxf/diag"
)

func TestResolveSystemImport(t *testing.T) {
	r := New(Options{})
	tcs, err := r.ResolveImports("ttype-test", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(tcs) != 1 || tcs[0].Name != "ttype-test" {
		t.Fatalf("got %+v", tcs)
	}
}

func TestResolveUnknownSystemImport(t *testing.T) {
	r := New(Options{})
	_, err := r.ResolveImports("does-not-exist", "")
	if err == nil {
		t.Fatal("expected an error for an unknown system import")
	}
}

func TestResolveRelativeFile(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, "shared.uxt")
	if err := os.WriteFile(shared, []byte("uxf 1.0\n=Pair a b\n[]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	importing := filepath.Join(dir, "main.uxf")

	r := New(Options{})
	tcs, err := r.ResolveImports("shared.uxt", importing)
	if err != nil {
		t.Fatal(err)
	}
	if len(tcs) != 1 || tcs[0].Name != "Pair" {
		t.Fatalf("got %+v", tcs)
	}
}

func TestResolveFileNotFound(t *testing.T) {
	r := New(Options{})
	_, err := r.ResolveImports("nope.uxt", "/tmp/main.uxf")
	if err == nil {
		t.Fatal("expected a not-found error")
	}
}

func TestResolveDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.uxt")
	b := filepath.Join(dir, "b.uxt")
	if err := os.WriteFile(a, []byte("uxf 1.0\n! b.uxt\n=A x\n[]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("uxf 1.0\n! a.uxt\n=B y\n[]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sink := diag.NewSink(nil, "main.uxf")
	r := New(Options{Sink: sink})
	_, err := r.ResolveImports("a.uxt", filepath.Join(dir, "main.uxf"))
	if err == nil {
		t.Fatal("expected the cycle to surface as an error from the top-level resolve")
	}

	found := false
	for _, d := range sink.List() {
		if d.Code == diag.CodeImportCycle {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an %s diagnostic about the cycle, got %v", diag.CodeImportCycle, sink.List())
	}
}

func TestCycleErrorImplementsImportCycleMethod(t *testing.T) {
	var err error = &CycleError{Source: "a.uxt"}
	ce, ok := err.(interface{ ImportCycle() string })
	if !ok {
		t.Fatal("CycleError must expose an ImportCycle() string method for parser.go to type-assert against")
	}
	if ce.ImportCycle() != "a.uxt" {
		t.Errorf("got %q", ce.ImportCycle())
	}
}

func TestResolveUsesUXFPathEnv(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, "shared.uxt")
	if err := os.WriteFile(shared, []byte("uxf 1.0\n=Pair a b\n[]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("UXF_PATH", dir)

	r := New(Options{})
	tcs, err := r.ResolveImports("shared.uxt", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(tcs) != 1 || tcs[0].Name != "Pair" {
		t.Fatalf("got %+v", tcs)
	}
}

func TestSystemRegistryContainsTTypeTest(t *testing.T) {
	if _, ok := SystemRegistry["ttype-test"]; !ok {
		t.Fatal("system registry must contain ttype-test, required by the format's conformance suite")
	}
}
