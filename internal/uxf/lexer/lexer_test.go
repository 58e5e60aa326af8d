package lexer

import "testing"

func scanSource(source string) ([]Token, []LexError) {
	l := New(source)
	return l.ScanTokens()
}

func checkTokenTypes(t *testing.T, tokens []Token, expected []TokenType) {
	t.Helper()

	actual := tokens
	if len(actual) > 0 && actual[len(actual)-1].Type == TOKEN_EOF {
		actual = actual[:len(actual)-1]
	}

	if len(actual) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\nexpected: %v\ngot: %v", len(expected), len(actual), expected, tokensToTypes(actual))
	}
	for i, tok := range actual {
		if tok.Type != expected[i] {
			t.Errorf("token %d: expected %s, got %s", i, expected[i], tok.Type)
		}
	}
}

func tokensToTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func TestHeaderLine(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0 My document\n[]\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Type != TOKEN_HEADER {
		t.Fatalf("expected HEADER token first, got %s", tokens[0].Type)
	}
	info, ok := tokens[0].Literal.(*HeaderInfo)
	if !ok {
		t.Fatalf("expected *HeaderInfo literal, got %T", tokens[0].Literal)
	}
	if info.Version != "1.0" || info.Custom != "My document" {
		t.Errorf("got version=%q custom=%q", info.Version, info.Custom)
	}
}

func TestMissingHeaderIsFatal(t *testing.T) {
	_, errs := scanSource("[]\n")
	if len(errs) == 0 {
		t.Fatal("expected a header error")
	}
	if errs[0].Code != "E-LEX-HEADER" {
		t.Errorf("expected E-LEX-HEADER, got %s", errs[0].Code)
	}
}

func TestContainerPunctuation(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\n{}[]()=:\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := []TokenType{
		TOKEN_HEADER,
		TOKEN_MAP_OPEN, TOKEN_MAP_CLOSE,
		TOKEN_LIST_OPEN, TOKEN_LIST_CLOSE,
		TOKEN_TABLE_OPEN, TOKEN_TABLE_CLOSE,
		TOKEN_TTYPE_BEGIN, TOKEN_COLON,
	}
	checkTokenTypes(t, tokens, expected)
}

func TestBoolLiterals(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\nyes no true false\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expected := []TokenType{TOKEN_HEADER, TOKEN_BOOL, TOKEN_BOOL, TOKEN_BOOL, TOKEN_BOOL}
	checkTokenTypes(t, tokens, expected)
	for _, tok := range tokens[1:5] {
		if _, ok := tok.Literal.(bool); !ok {
			t.Errorf("expected bool literal, got %T", tok.Literal)
		}
	}
}

func TestIntAndRealLiterals(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\n-17 3.25 1.5e10\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{TOKEN_HEADER, TOKEN_INT, TOKEN_REAL, TOKEN_REAL})
	if v, ok := tokens[1].Literal.(int64); !ok || v != -17 {
		t.Errorf("expected int64(-17), got %v (%T)", tokens[1].Literal, tokens[1].Literal)
	}
}

func TestDateAndDateTimeLiterals(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\n2022-07-04 2022-07-04T10:30:00\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{TOKEN_HEADER, TOKEN_DATE, TOKEN_DATETIME})
	date, ok := tokens[1].Literal.(DateLiteral)
	if !ok {
		t.Fatalf("expected DateLiteral, got %T", tokens[1].Literal)
	}
	if date.Year != 2022 || date.Month != 7 || date.Day != 4 {
		t.Errorf("got %+v", date)
	}
}

func TestTypeNamesVsIdentifiers(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\nint Point\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{TOKEN_HEADER, TOKEN_TYPENAME, TOKEN_IDENT})
}

func TestImportDirective(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\n! shared.uxt\n[]\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[1].Type != TOKEN_IMPORT_DIRECTIVE {
		t.Fatalf("expected IMPORT_DIRECTIVE, got %s", tokens[1].Type)
	}
}

func TestStringEntities(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\n<a &amp; b &lt;tag&gt;>\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[1].Type != TOKEN_STR {
		t.Fatalf("expected STR, got %s", tokens[1].Type)
	}
	if got := tokens[1].Literal.(string); got != "a & b <tag>" {
		t.Errorf("expected decoded entities, got %q", got)
	}
}

func TestBytesLiteral(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\n(:deadbeef:)\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[1].Type != TOKEN_BYTES {
		t.Fatalf("expected BYTES, got %s", tokens[1].Type)
	}
}

func TestNullToken(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\n?\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[1].Type != TOKEN_NULL {
		t.Fatalf("expected NULL, got %s", tokens[1].Type)
	}
}

func TestCommentToken(t *testing.T) {
	tokens, errs := scanSource("uxf 1.0\n#<a file comment>\n[]\n")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[1].Type != TOKEN_COMMENT {
		t.Fatalf("expected COMMENT, got %s", tokens[1].Type)
	}
}
