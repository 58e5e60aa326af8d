package parser

import (
	"fmt"
	"testing"

	"github.com/uxf-lang/uxf/internal/uxf/diag"
	"github.com/uxf-lang/uxf/internal/uxf/lexer"
	"github.com/uxf-lang/uxf/internal/uxf/model"
)

func parseSource(t *testing.T, source string) (*model.Document, diag.DiagnosticList) {
	t.Helper()
	tokens, lexErrs := lexer.New(source).ScanTokens()
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	sink := diag.NewSink(nil, "-")
	p := New(tokens, sink, Options{Filename: "-"})
	doc := p.Parse()
	return doc, sink.List()
}

func TestParseMinimalEmptyList(t *testing.T) {
	doc, diags := parseSource(t, "uxf 1.0\n[]\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	l, ok := doc.Value.List()
	if !ok {
		t.Fatal("expected root value to be a List")
	}
	if l.Len() != 0 {
		t.Errorf("expected empty list, got %d items", l.Len())
	}
}

func TestParseHeaderCustomText(t *testing.T) {
	doc, _ := parseSource(t, "uxf 1.0 Price List\n[]\n")
	if doc.Custom != "Price List" {
		t.Errorf("Custom = %q, want %q", doc.Custom, "Price List")
	}
}

func TestParseTypedTableWithEntityDecoding(t *testing.T) {
	src := "uxf 1.0 Price List\n" +
		"=PriceList Date:date Price:real Quantity:int ID:str Description:str\n" +
		"(PriceList 2022-09-21 3.99 2 <CH1-A2> <Chisels (pair), 1in &amp; 1¼in>)\n"
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	tbl, ok := doc.Value.Table()
	if !ok {
		t.Fatal("expected root value to be a Table")
	}
	if tbl.Rows() != 1 || tbl.Cols() != 5 {
		t.Fatalf("expected 1 row of 5 cols, got %d rows %d cols", tbl.Rows(), tbl.Cols())
	}
	desc, _ := tbl.At(0, 4).Str()
	want := "Chisels (pair), 1in & 1¼in"
	if desc != want {
		t.Errorf("Description = %q, want %q", desc, want)
	}
	price, _ := tbl.At(0, 1).Real()
	if price != 3.99 {
		t.Errorf("Price = %v, want 3.99", price)
	}
}

func TestParseNullInTypedSlot(t *testing.T) {
	src := "uxf 1.0\n=Cust CID:int Addr:str\n(Cust 19 ?)\n"
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	tbl, _ := doc.Value.Table()
	if !tbl.At(0, 1).IsNull() {
		t.Error("expected Addr cell to be Null")
	}
}

func TestParseTableRecordLengthMismatch(t *testing.T) {
	src := "uxf 1.0\n=Pair a b\n(Pair 1 2 3)\n"
	_, diags := parseSource(t, src)
	found := false
	for _, d := range diags {
		if d.Code == diag.CodeParseTableLen {
			found = true
		}
	}
	if !found {
		t.Errorf("expected E-PARSE-TABLE-LEN, got %v", diags)
	}
}

func TestParseUnknownTTypeInTable(t *testing.T) {
	src := "uxf 1.0\n(Nope 1 2)\n"
	_, diags := parseSource(t, src)
	found := false
	for _, d := range diags {
		if d.Code == diag.CodeTypeUnknownTType {
			found = true
		}
	}
	if !found {
		t.Errorf("expected E-TYPE-UNKNOWN-TTYPE, got %v", diags)
	}
}

func TestParseFieldlessTableAcceptsNoValues(t *testing.T) {
	src := "uxf 1.0\n=Suit\n(Suit)\n"
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	tbl, ok := doc.Value.Table()
	if !ok {
		t.Fatal("expected Table")
	}
	if tbl.Rows() != 1 || tbl.Cols() != 0 {
		t.Errorf("expected 1 fieldless row, got rows=%d cols=%d", tbl.Rows(), tbl.Cols())
	}
}

func TestParseMapDuplicateKeyWarning(t *testing.T) {
	src := "uxf 1.0\n{str int <a> 1 <b> 2 <a> 3}\n"
	doc, diags := parseSource(t, src)
	var warned bool
	for _, d := range diags {
		if d.Code == diag.CodeWarnDuplicateKey {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected duplicate-key warning, got %v", diags)
	}
	m, _ := doc.Value.Map()
	v, ok := m.Get(model.NewStr("a"))
	if !ok {
		t.Fatal("expected key 'a' present")
	}
	i, _ := v.Int()
	if i != 3 {
		t.Errorf("expected last-write-wins value 3, got %d", i)
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 entries (a,b), got %d", m.Len())
	}
}

func TestParseMapOrderPreserved(t *testing.T) {
	src := "uxf 1.0\n{<k1> 1 <k2> 2 <k3> 3}\n"
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	m, _ := doc.Value.Map()
	want := []string{"k1", "k2", "k3"}
	keys := m.Keys()
	for i, w := range want {
		s, _ := keys[i].Str()
		if s != w {
			t.Errorf("key %d = %q, want %q", i, s, w)
		}
	}
}

func TestParseReservedWordAsTTypeName(t *testing.T) {
	src := "uxf 1.0\n=int a\n[]\n"
	_, diags := parseSource(t, src)
	found := false
	for _, d := range diags {
		if d.Code == diag.CodeTypeReserved {
			found = true
		}
	}
	if !found {
		t.Errorf("expected E-TYPE-RESERVED, got %v", diags)
	}
}

func TestParseIntPromotedToRealField(t *testing.T) {
	src := "uxf 1.0\n=T x:real\n(T 3)\n"
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	tbl, _ := doc.Value.Table()
	v := tbl.At(0, 0)
	if v.Kind() != model.KindReal {
		t.Fatalf("expected promoted real, got kind %s", v.Kind())
	}
	r, _ := v.Real()
	if r != 3.0 {
		t.Errorf("got %v, want 3.0", r)
	}
}

func TestParseListWithVType(t *testing.T) {
	src := "uxf 1.0\n[int 1 2 3]\n"
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	l, _ := doc.Value.List()
	if l.VType != "int" {
		t.Errorf("VType = %q, want int", l.VType)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
}

func TestParseNestedContainers(t *testing.T) {
	src := "uxf 1.0\n[[1 2] [3 4]]\n"
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	l, _ := doc.Value.List()
	if l.Len() != 2 {
		t.Fatalf("expected 2 nested lists, got %d", l.Len())
	}
	inner, ok := l.At(0).List()
	if !ok || inner.Len() != 2 {
		t.Errorf("expected inner list of 2 items")
	}
}

func TestParseLaterTTypeRedefinitionReplacesImport(t *testing.T) {
	imported := &model.TClass{Name: "Pair", Fields: []model.Field{{Name: "a"}, {Name: "b"}}}
	resolver := stubResolver{tcs: []*model.TClass{imported}}

	src := "uxf 1.0\n! somesource\n=Pair a b c\n(Pair 1 2 3)\n"
	tokens, lexErrs := lexer.New(src).ScanTokens()
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	sink := diag.NewSink(nil, "-")
	p := New(tokens, sink, Options{Filename: "-", Importer: resolver})
	doc := p.Parse()
	if sink.Fatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", sink.List())
	}
	tc, ok := doc.TClass("Pair")
	if !ok || len(tc.Fields) != 3 {
		t.Fatalf("expected local redefinition with 3 fields, got %+v", tc)
	}
}

type stubResolver struct {
	tcs []*model.TClass
	err error
}

func (s stubResolver) ResolveImports(source, fromFile string) ([]*model.TClass, error) {
	return s.tcs, s.err
}

// stubCycleError mimics importresolver.CycleError's shape without importing
// that package (which imports parser), so resolveImport's type-assertion
// path can be exercised here.
type stubCycleError struct{ source string }

func (e *stubCycleError) Error() string       { return "import cycle detected at " + e.source }
func (e *stubCycleError) ImportCycle() string { return e.source }

func TestParseImportCycleReportedAsCycleCode(t *testing.T) {
	resolver := stubResolver{err: &stubCycleError{source: "a.uxt"}}

	src := "uxf 1.0\n! a.uxt\n[]\n"
	tokens, lexErrs := lexer.New(src).ScanTokens()
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	sink := diag.NewSink(nil, "-")
	p := New(tokens, sink, Options{Filename: "-", Importer: resolver})
	p.Parse()

	found := false
	for _, d := range sink.List() {
		if d.Code == diag.CodeImportCycle {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s, got %v", diag.CodeImportCycle, sink.List())
	}
}

func TestParseImportNotFoundKeepsNotFoundCode(t *testing.T) {
	resolver := stubResolver{err: fmt.Errorf("import %q not found", "a.uxt")}

	src := "uxf 1.0\n! a.uxt\n[]\n"
	tokens, lexErrs := lexer.New(src).ScanTokens()
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	sink := diag.NewSink(nil, "-")
	p := New(tokens, sink, Options{Filename: "-", Importer: resolver})
	p.Parse()

	found := false
	for _, d := range sink.List() {
		if d.Code == diag.CodeImportNotFound {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s, got %v", diag.CodeImportNotFound, sink.List())
	}
}

func TestParseReservedWordAsFieldName(t *testing.T) {
	src := "uxf 1.0\n=T int str\n[]\n"
	_, diags := parseSource(t, src)
	found := false
	for _, d := range diags {
		if d.Code == diag.CodeTypeReserved {
			found = true
		}
	}
	if !found {
		t.Errorf("expected E-TYPE-RESERVED for a reserved field name, got %v", diags)
	}
}

func TestParseOddMapItemCount(t *testing.T) {
	src := "uxf 1.0\n{<k1> 1 <k2>}\n"
	_, diags := parseSource(t, src)
	found := false
	for _, d := range diags {
		if d.Code == diag.CodeParseOddMapItems {
			found = true
		}
	}
	if !found {
		t.Errorf("expected E-PARSE-MAP-ODD-ITEMS, got %v", diags)
	}
}
