package uxf

import "testing"

func TestLoadDumpFacadeRoundTrip(t *testing.T) {
	src := "uxf 1.0\n[1 2 3]\n"
	res := Load(src, LoadOptions{Filename: "-"})
	if res.Diagnostics.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", res.Diagnostics)
	}
	got := Dump(res.Document, nil)
	if got != src {
		t.Errorf("got %q, want %q", got, src)
	}
}

func TestNewDocumentDefaults(t *testing.T) {
	doc := NewDocument()
	if doc.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", doc.Version)
	}
}

func TestDefaultFormatUsedWhenNilPassed(t *testing.T) {
	res := Load("uxf 1.0\n[]\n", LoadOptions{Filename: "-"})
	got := Dump(res.Document, nil)
	if got != "uxf 1.0\n[]\n" {
		t.Errorf("got %q", got)
	}
}

func TestValidatorModeConstantsExposed(t *testing.T) {
	if ModeStrict == ModeFixTypes {
		t.Fatal("expected ModeStrict and ModeFixTypes to be distinct")
	}
}
