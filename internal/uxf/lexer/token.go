package lexer

import "fmt"

// TokenType enumerates the grammar terminals the lexer recognizes.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	TOKEN_HEADER           // 'uxf <real> [custom text]' header line
	TOKEN_COMMENT          // #<...>
	TOKEN_IMPORT_DIRECTIVE // '! <source>'

	TOKEN_TTYPE_BEGIN // '='
	TOKEN_MAP_OPEN    // '{'
	TOKEN_MAP_CLOSE   // '}'
	TOKEN_LIST_OPEN   // '['
	TOKEN_LIST_CLOSE  // ']'
	TOKEN_TABLE_OPEN  // '('
	TOKEN_TABLE_CLOSE // ')'
	TOKEN_COLON       // ':'

	TOKEN_BYTES    // (:HHHH...:)
	TOKEN_STR      // <...>
	TOKEN_NULL     // ?
	TOKEN_BOOL     // yes|no|true|false
	TOKEN_INT      // [-+]?[0-9]+
	TOKEN_REAL     // decimal with point and/or exponent
	TOKEN_DATE     // YYYY-MM-DD
	TOKEN_DATETIME // YYYY-MM-DDTHH:MM(:SS)?(offset)?
	TOKEN_TYPENAME // a built-in type name
	TOKEN_IDENT    // an identifier that is not a built-in type name
)

var tokenTypeNames = map[TokenType]string{
	TOKEN_EOF:              "EOF",
	TOKEN_ERROR:            "ERROR",
	TOKEN_HEADER:           "HEADER",
	TOKEN_COMMENT:          "COMMENT",
	TOKEN_IMPORT_DIRECTIVE: "IMPORT_DIRECTIVE",
	TOKEN_TTYPE_BEGIN:      "TTYPE_BEGIN",
	TOKEN_MAP_OPEN:         "MAP_OPEN",
	TOKEN_MAP_CLOSE:        "MAP_CLOSE",
	TOKEN_LIST_OPEN:        "LIST_OPEN",
	TOKEN_LIST_CLOSE:       "LIST_CLOSE",
	TOKEN_TABLE_OPEN:       "TABLE_OPEN",
	TOKEN_TABLE_CLOSE:      "TABLE_CLOSE",
	TOKEN_COLON:            "COLON",
	TOKEN_BYTES:            "BYTES",
	TOKEN_STR:              "STR",
	TOKEN_NULL:             "NULL",
	TOKEN_BOOL:             "BOOL",
	TOKEN_INT:              "INT",
	TOKEN_REAL:             "REAL",
	TOKEN_DATE:             "DATE",
	TOKEN_DATETIME:         "DATETIME",
	TOKEN_TYPENAME:         "TYPENAME",
	TOKEN_IDENT:            "IDENT",
}

// String returns the token type's name, used in error messages.
func (t TokenType) String() string {
	if n, ok := tokenTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// TypeNames is the set of built-in scalar/collection type names recognized
// as TOKEN_TYPENAME rather than TOKEN_IDENT.
var TypeNames = map[string]bool{
	"bool": true, "int": true, "real": true, "date": true, "datetime": true,
	"str": true, "bytes": true, "list": true, "map": true, "table": true,
}

// Token is a single lexical token.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // parsed payload: int64, float64, DateLiteral, DateTimeLiteral, string, []byte, bool, or *HeaderInfo
	Line    int
	Column  int
}

// String renders a token for diagnostics/tests.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q (%v) at %d:%d", t.Type, t.Lexeme, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// HeaderInfo is the Literal payload of a TOKEN_HEADER token.
type HeaderInfo struct {
	Version string
	Custom  string
}

// DateLiteral is the Literal payload of a TOKEN_DATE token: the three raw
// components, left for the parser/model layer to validate and construct a
// model.Date from (the lexer does not import model, to stay a leaf
// package).
type DateLiteral struct {
	Year, Month, Day int
}

// DateTimeLiteral is the Literal payload of a TOKEN_DATETIME token.
type DateTimeLiteral struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	HasOffset            bool
	OffsetMinutes        int
}

// LexError is a lexical-analysis error.
type LexError struct {
	Code    string
	Message string
	Line    int
	Column  int
	Lexeme  string
}

// Error implements the error interface.
func (e LexError) Error() string {
	return fmt.Sprintf("%s at line %d: %s (near %q)", e.Code, e.Line, e.Message, e.Lexeme)
}
