package writer

import (
	"strings"
	"testing"

	"github.com/uxf-lang/uxf/internal/uxf/model"
)

func TestWriteMinimalEmptyList(t *testing.T) {
	doc := model.NewDocument()
	doc.Value = model.ListValue(model.NewList(""))
	got := Write(doc, nil)
	want := "uxf 1.0\n[]\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteHeaderWithCustom(t *testing.T) {
	doc := model.NewDocument()
	doc.Custom = "Price List"
	doc.Value = model.ListValue(model.NewList(""))
	got := Write(doc, nil)
	if !strings.HasPrefix(got, "uxf 1.0 Price List\n") {
		t.Errorf("got %q", got)
	}
}

func TestWriteBoolYesNoByDefault(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("")
	l.Append(model.NewBool(true))
	l.Append(model.NewBool(false))
	doc.Value = model.ListValue(l)
	got := Write(doc, nil)
	if !strings.Contains(got, "yes") || !strings.Contains(got, "no") {
		t.Errorf("expected yes/no in output, got %q", got)
	}
}

func TestWriteBoolTrueFalseWhenConfigured(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("")
	l.Append(model.NewBool(true))
	doc.Value = model.ListValue(l)

	f := DefaultFormat()
	f.UseTrueFalse = true
	got := Write(doc, f)
	if !strings.Contains(got, "true") {
		t.Errorf("expected true in output, got %q", got)
	}
}

func TestWriteStringEscaping(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("")
	l.Append(model.NewStr("a & b <tag>"))
	doc.Value = model.ListValue(l)
	got := Write(doc, nil)
	if !strings.Contains(got, "a &amp; b &lt;tag&gt;") {
		t.Errorf("expected escaped entities, got %q", got)
	}
}

func TestWriteBytesAsUppercaseHex(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("")
	l.Append(model.NewBytes([]byte{0xde, 0xad, 0xbe, 0xef}))
	doc.Value = model.ListValue(l)
	got := Write(doc, nil)
	if !strings.Contains(got, "DE AD BE EF") {
		t.Errorf("expected uppercase hex pairs, got %q", got)
	}
}

func TestWriteRealIntegralGetsDotZero(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("")
	l.Append(model.NewReal(4))
	doc.Value = model.ListValue(l)
	got := Write(doc, nil)
	if !strings.Contains(got, "4.0") {
		t.Errorf("expected 4.0 to preserve real type, got %q", got)
	}
}

func TestWriteRealDPOverride(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("")
	l.Append(model.NewReal(3.14159))
	doc.Value = model.ListValue(l)

	f := DefaultFormat()
	f.RealDP = 2
	got := Write(doc, f)
	if !strings.Contains(got, "3.14") {
		t.Errorf("expected 2 decimal places, got %q", got)
	}
}

func TestWriteTTypeDefOrdering(t *testing.T) {
	doc := model.NewDocument()
	doc.DefineTClass(&model.TClass{Name: "PriceList", Fields: []model.Field{
		{Name: "Date", VType: "date"},
		{Name: "Price", VType: "real"},
	}})
	tbl := model.NewTable("PriceList", 2)
	doc.Value = model.TableValue(tbl)

	got := Write(doc, nil)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[0] != "uxf 1.0" {
		t.Fatalf("expected header first, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "=PriceList") {
		t.Fatalf("expected ttype def second, got %q", lines[1])
	}
}

func TestWriteCompactContainerInline(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("int")
	l.Append(model.NewInt(1))
	l.Append(model.NewInt(2))
	doc.Value = model.ListValue(l)
	got := Write(doc, nil)
	if !strings.Contains(got, "[int 1 2]") {
		t.Errorf("expected inline short list, got %q", got)
	}
}

func TestWriteLongContainerMultiline(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("str")
	for i := 0; i < 10; i++ {
		l.Append(model.NewStr("a fairly long string element number"))
	}
	doc.Value = model.ListValue(l)

	f := DefaultFormat()
	f.MaxShortLen = 32
	got := Write(doc, f)
	if !strings.Contains(got, "\n  ") {
		t.Errorf("expected multi-line indented output, got %q", got)
	}
}

func TestWriteCompactIndentEmpty(t *testing.T) {
	doc := model.NewDocument()
	l := model.NewList("str")
	for i := 0; i < 10; i++ {
		l.Append(model.NewStr("a fairly long string element number"))
	}
	doc.Value = model.ListValue(l)

	f := DefaultFormat()
	f.Indent = ""
	f.MaxShortLen = 1
	got := Write(doc, f)
	if strings.Contains(got, "\n  ") {
		t.Errorf("expected compact (no indent) multi-line output, got %q", got)
	}
}

func TestWriteReplaceImportsExpandsTTypeDefs(t *testing.T) {
	doc := model.NewDocument()
	tc := &model.TClass{Name: "Pair", Fields: []model.Field{{Name: "a"}, {Name: "b"}}}
	doc.ImportTClass(tc, "shared.uxt")
	doc.Value = model.ListValue(model.NewList(""))

	f := DefaultFormat()
	f.ReplaceImports = true
	got := Write(doc, f)
	if strings.Contains(got, "! shared.uxt") {
		t.Errorf("expected import directive to be suppressed, got %q", got)
	}
	if !strings.Contains(got, "=Pair a b") {
		t.Errorf("expected ttype inlined, got %q", got)
	}
}

func TestWriteRetainsImportsByDefault(t *testing.T) {
	doc := model.NewDocument()
	doc.Imports = append(doc.Imports, "shared.uxt")
	tc := &model.TClass{Name: "Pair", Fields: []model.Field{{Name: "a"}}}
	doc.ImportTClass(tc, "shared.uxt")
	doc.Value = model.ListValue(model.NewList(""))

	got := Write(doc, nil)
	if !strings.Contains(got, "! shared.uxt") {
		t.Errorf("expected import directive retained, got %q", got)
	}
	if strings.Contains(got, "=Pair") {
		t.Errorf("expected imported ttype not re-emitted as a local def, got %q", got)
	}
}

func TestLoadSaveFormatRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/uxf.yml"

	f := DefaultFormat()
	f.Indent = "    "
	f.UseTrueFalse = true
	if err := SaveFormat(path, f); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFormat(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Indent != "    " || !loaded.UseTrueFalse {
		t.Errorf("got %+v", loaded)
	}
}

func TestLoadFormatMissingFileReturnsDefault(t *testing.T) {
	loaded, err := LoadFormat("/nonexistent/path/uxf.yml")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Indent != "  " {
		t.Errorf("expected default format, got %+v", loaded)
	}
}
