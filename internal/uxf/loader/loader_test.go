package loader

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uxf-lang/uxf/internal/uxf/diag"
	"github.com/uxf-lang/uxf/internal/uxf/model"
	"github.com/uxf-lang/uxf/internal/uxf/validator"
)

func TestLoadRoundTripMinimal(t *testing.T) {
	src := "uxf 1.0\n[]\n"
	res := Load(src, Options{Filename: "-"})
	if res.Diagnostics.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", res.Diagnostics)
	}
	got := Dump(res.Document, nil)
	if got != src {
		t.Errorf("round-trip mismatch: got %q, want %q", got, src)
	}
}

func TestLoadDumpIdempotent(t *testing.T) {
	src := "uxf 1.0 Price List\n=PriceList Date:date Price:real Quantity:int ID:str Description:str\n(PriceList 2022-09-21 3.99 2 <CH1-A2> <Chisels (pair), 1in &amp; 1¼in>)\n"
	res := Load(src, Options{Filename: "-"})
	if res.Diagnostics.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", res.Diagnostics)
	}
	first := Dump(res.Document, nil)

	res2 := Load(first, Options{Filename: "-"})
	if res2.Diagnostics.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics on reload: %v", res2.Diagnostics)
	}
	second := Dump(res2.Document, nil)

	if first != second {
		t.Errorf("dump not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestLoadStripsBOM(t *testing.T) {
	src := bom + "uxf 1.0\n[]\n"
	res := Load(src, Options{Filename: "-"})
	if res.Diagnostics.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", res.Diagnostics)
	}
	got := Dump(res.Document, nil)
	if strings.Contains(got, bom) {
		t.Error("expected BOM not to be re-emitted")
	}
}

func TestLoadFileDetectsGzipBySuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.uxf.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	gw.Write([]byte("uxf 1.0\n[]\n"))
	gw.Close()
	f.Close()

	res, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Diagnostics.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", res.Diagnostics)
	}
	l, ok := res.Document.Value.List()
	if !ok || l.Len() != 0 {
		t.Errorf("expected empty list, got %+v", res.Document.Value)
	}
}

func TestDumpFileWritesGzipForGzSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.uxf.gz")

	doc := model.NewDocument()
	doc.Value = model.ListValue(model.NewList(""))
	if err := DumpFile(doc, path, nil); err != nil {
		t.Fatal(err)
	}

	res, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Diagnostics.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", res.Diagnostics)
	}
}

func TestLoadHandlerReceivesDiagnostics(t *testing.T) {
	var received []string
	handler := func(line int, code diag.Code, message, filename string, fatal bool) {
		received = append(received, string(code))
	}
	src := "uxf 1.0\n=T x:int\n(T 3.14)\n"
	res := Load(src, Options{Filename: "-", Handler: handler})
	if len(received) == 0 {
		t.Fatal("expected handler to be invoked")
	}
	if len(res.Diagnostics) != len(received) {
		t.Errorf("expected handler calls to match diagnostics list length")
	}
}

func TestLoadSkipValidationBypassesTypeChecks(t *testing.T) {
	src := "uxf 1.0\n=T x:int\n(T 3.14)\n"
	res := Load(src, Options{Filename: "-", SkipValidation: true})
	for _, d := range res.Diagnostics {
		if d.Code == diag.CodeTypeMismatch {
			t.Error("expected type mismatch check to be skipped")
		}
	}
}

func TestLoadFixTypesModeCoerces(t *testing.T) {
	src := "uxf 1.0\n=T x:int\n(T <7>)\n"
	res := Load(src, Options{Filename: "-", ValidatorMode: validator.ModeFixTypes})
	if res.Diagnostics.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", res.Diagnostics)
	}
	tbl, _ := res.Document.Value.Table()
	v := tbl.At(0, 0)
	if v.Kind() != model.KindInt {
		t.Errorf("expected coerced int, got %s", v.Kind())
	}
}
