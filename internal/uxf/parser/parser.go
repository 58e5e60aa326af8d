package parser

import (
	"strconv"
	"strings"

	"github.com/uxf-lang/uxf/internal/uxf/diag"
	"github.com/uxf-lang/uxf/internal/uxf/lexer"
	"github.com/uxf-lang/uxf/internal/uxf/model"
)

// ImportResolver resolves one import directive's source into the ordered
// TClasses it contributes. It is declared here, rather than
// imported from internal/uxf/importresolver, to break the structural cycle
// between "parser needs to resolve imports" and "the import resolver needs
// to re-parse the UXF text it fetches": a narrow interface instead of a
// direct dependency.
type ImportResolver interface {
	ResolveImports(source, fromFile string) ([]*model.TClass, error)
}

// Options configures a Parser.
type Options struct {
	// Filename is attached to every diagnostic and passed to Importer as
	// the "fromFile" parameter for relative import resolution.
	Filename string
	// Importer resolves import directives. May be nil, in which case
	// imports are recorded on the Document but never inlined (useful for
	// tests that don't care about ttype resolution).
	Importer ImportResolver
}

// Parser transforms a UXF token stream into a model.Document.
type Parser struct {
	tokens   []lexer.Token
	current  int
	sink     *diag.Sink
	importer ImportResolver
	filename string

	doc *model.Document
	// locallyDefined tracks ttype names defined by a local '=' block during
	// this parse, so a second local '=' block with the same name but a
	// different shape is reported as a genuine conflict
	// rather than silently accepted as "later redefinition" (which only
	// applies to a local definition replacing an *imported* one).
	locallyDefined map[string]bool
}

// New creates a Parser over tokens, reporting through sink.
func New(tokens []lexer.Token, sink *diag.Sink, opts Options) *Parser {
	return &Parser{
		tokens:         tokens,
		sink:           sink,
		importer:       opts.Importer,
		filename:       opts.Filename,
		locallyDefined: make(map[string]bool),
	}
}

// Parse consumes the entire token stream and returns the constructed
// Document. Errors are reported through the Parser's Sink; callers should
// check sink.Fatal() to decide whether the result is trustworthy.
func (p *Parser) Parse() *model.Document {
	doc := model.NewDocument()
	p.doc = doc

	p.parseHeader(doc)
	p.parseFileComment(doc)
	p.parseImports(doc)
	p.parseTTypeDefs(doc)
	doc.Value = p.parseTopValue()

	if !p.check(lexer.TOKEN_EOF) {
		p.errorAt(diag.CodeParseUnexpectedToken, "unexpected content after the top-level value", p.peek())
	}

	return doc
}

// parseHeader consumes the mandatory HEADER token. A version greater than model.VersionSupported is a warning, not an
// error; the lexer already turned a malformed header into an E-LEX-HEADER
// diagnostic of its own, so a missing HEADER token here means lexing
// already failed and there is nothing further to report.
func (p *Parser) parseHeader(doc *model.Document) {
	if !p.check(lexer.TOKEN_HEADER) {
		return
	}
	tok := p.advance()
	info, _ := tok.Literal.(*lexer.HeaderInfo)
	if info == nil {
		return
	}
	doc.Version = info.Version
	doc.Custom = info.Custom

	if versionNewerThanSupported(info.Version) {
		p.sink.Report(diag.NewWarning(diag.CodeWarnVersionAhead, diag.CategoryWarning,
			"document format version "+info.Version+" is newer than the "+model.VersionSupported+" this implementation supports",
			tok.Line, tok.Column))
	}
}

// versionNewerThanSupported compares a header's version string against
// model.VersionSupported numerically.
func versionNewerThanSupported(version string) bool {
	got, err1 := strconv.ParseFloat(version, 64)
	want, err2 := strconv.ParseFloat(model.VersionSupported, 64)
	if err1 != nil || err2 != nil {
		return false
	}
	return got > want
}

// parseFileComment consumes the optional file-level COMMENT, which is only
// recognized here if it immediately follows the header; COMMENT tokens
// after '{', '[', '(' or '=' are consumed by the container and ttype
// definition parsers.
func (p *Parser) parseFileComment(doc *model.Document) {
	if !p.check(lexer.TOKEN_COMMENT) {
		return
	}
	tok := p.advance()
	doc.Comment, _ = tok.Literal.(string)
}

// parseImports consumes zero or more IMPORT_DIRECTIVE tokens. Each directive's raw text may name more than one
// comma-separated source; the lexer leaves that splitting to us.
func (p *Parser) parseImports(doc *model.Document) {
	for p.check(lexer.TOKEN_IMPORT_DIRECTIVE) {
		tok := p.advance()
		raw, _ := tok.Literal.(string)
		for _, source := range splitImportSources(raw) {
			doc.Imports = append(doc.Imports, source)
			p.resolveImport(doc, source, tok)
		}
	}
}

func splitImportSources(raw string) []string {
	parts := strings.Split(raw, ",")
	sources := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sources = append(sources, part)
		}
	}
	return sources
}

// resolveImport fetches one import source's ttypes (if an Importer was
// configured) and merges them into doc.
func (p *Parser) resolveImport(doc *model.Document, source string, tok lexer.Token) {
	if p.importer == nil {
		return
	}
	tcs, err := p.importer.ResolveImports(source, p.filename)
	if err != nil {
		code := diag.CodeImportNotFound
		if _, cyclic := err.(interface{ ImportCycle() string }); cyclic {
			code = diag.CodeImportCycle
		}
		p.sink.Report(diag.New(code, diag.CategoryImport, err.Error(), tok.Line, tok.Column))
		return
	}
	for _, tc := range tcs {
		existed, sameShape := doc.ImportTClass(tc, source)
		if existed && !sameShape {
			p.sink.Report(diag.New(diag.CodeImportConflict, diag.CategoryImport,
				"ttype "+tc.Name+" imported from "+source+" conflicts with an earlier definition of the same name",
				tok.Line, tok.Column))
		}
	}
}

// parseTTypeDefs consumes zero or more TTYPEDEF blocks: '=' IDENT FIELD+.
func (p *Parser) parseTTypeDefs(doc *model.Document) {
	for p.check(lexer.TOKEN_TTYPE_BEGIN) {
		p.parseOneTTypeDef(doc)
	}
}

func (p *Parser) parseOneTTypeDef(doc *model.Document) {
	p.advance() // consume '='

	var comment string
	if p.check(lexer.TOKEN_COMMENT) {
		comment, _ = p.advance().Literal.(string)
	}

	nameTok := p.peek()
	if !p.check(lexer.TOKEN_IDENT) {
		if p.check(lexer.TOKEN_TYPENAME) || p.check(lexer.TOKEN_BOOL) {
			p.errorAt(diag.CodeTypeReserved, "reserved word \""+nameTok.Lexeme+"\" cannot be used as a ttype name", nameTok)
		} else {
			p.errorAt(diag.CodeParseMissingToken, "expected a ttype name after '='", nameTok)
		}
		p.synchronize()
		return
	}
	name := p.advance().Lexeme

	var fields []model.Field
	for p.check(lexer.TOKEN_IDENT) || p.check(lexer.TOKEN_TYPENAME) || p.check(lexer.TOKEN_BOOL) {
		fieldTok := p.advance()
		if fieldTok.Type == lexer.TOKEN_TYPENAME || fieldTok.Type == lexer.TOKEN_BOOL {
			p.errorAt(diag.CodeTypeReserved, "reserved word \""+fieldTok.Lexeme+"\" cannot be used as a field name", fieldTok)
		}
		field := model.Field{Name: fieldTok.Lexeme}
		if p.match(lexer.TOKEN_COLON) {
			field.VType = p.parseVTypeToken()
		}
		fields = append(fields, field)
	}

	tc := &model.TClass{Name: name, Fields: fields, Comment: comment}
	if p.locallyDefined[name] {
		if prev, ok := doc.TClass(name); ok && !prev.SameShape(tc) {
			p.errorAt(diag.CodeParseDuplicateTType, "ttype "+name+" redefined with different fields", nameTok)
		}
	}
	p.locallyDefined[name] = true
	doc.DefineTClass(tc)
}

// parseVTypeToken consumes a single VTYPE token: a built-in type name or a
// ttype identifier. The current token is
// expected to be TOKEN_TYPENAME or TOKEN_IDENT; anything else is a missing
// vtype.
func (p *Parser) parseVTypeToken() string {
	if p.check(lexer.TOKEN_TYPENAME) || p.check(lexer.TOKEN_IDENT) {
		return p.advance().Lexeme
	}
	p.errorAt(diag.CodeParseMissingToken, "expected a type name", p.peek())
	return ""
}

// parseTopValue consumes the document's single required Map, List or Table.
func (p *Parser) parseTopValue() model.Value {
	switch {
	case p.check(lexer.TOKEN_MAP_OPEN):
		return model.MapValue(p.parseMap())
	case p.check(lexer.TOKEN_LIST_OPEN):
		return model.ListValue(p.parseList())
	case p.check(lexer.TOKEN_TABLE_OPEN):
		return model.TableValue(p.parseTable())
	default:
		p.errorAt(diag.CodeParseMissingToken, "expected a top-level list, map or table value", p.peek())
		return model.ListValue(model.NewList(""))
	}
}

// isTypeNameToken reports whether the current token could begin a VTYPE or
// KTYPE declaration. VALUE productions never start with a bare TYPENAME or
// IDENT token, so seeing one here unambiguously signals a type
// declaration rather than a value.
func (p *Parser) isTypeNameToken() bool {
	return p.check(lexer.TOKEN_TYPENAME) || p.check(lexer.TOKEN_IDENT)
}

// parseMap consumes '{' [COMMENT] [KTYPE [VTYPE]] (KEY VALUE)* '}'.
func (p *Parser) parseMap() *model.Map {
	p.advance() // consume '{'

	var comment string
	if p.check(lexer.TOKEN_COMMENT) {
		comment, _ = p.advance().Literal.(string)
	}

	ktype, vtype := "", ""
	if p.check(lexer.TOKEN_TYPENAME) && model.KTypes[p.peek().Lexeme] {
		ktype = p.advance().Lexeme
		if p.isTypeNameToken() {
			vtype = p.parseVTypeToken()
		}
	}

	m := model.NewMap(ktype, vtype)
	m.Comment = comment

	for !p.check(lexer.TOKEN_MAP_CLOSE) && !p.isAtEnd() {
		keyTok := p.peek()
		key := p.parseKey()
		if p.check(lexer.TOKEN_MAP_CLOSE) || p.isAtEnd() {
			p.errorAt(diag.CodeParseOddMapItems, "map has an odd number of items; expected a value after the last key", keyTok)
			break
		}
		val := p.parseValue()
		val = coerceIntToReal(val, vtype)
		if existed := m.Set(key, val); existed {
			kt := p.previousKeyToken()
			p.sink.Report(diag.NewWarning(diag.CodeWarnDuplicateKey, diag.CategoryWarning,
				"duplicate map key overwrites its earlier value", kt.Line, kt.Column))
		}
	}
	p.consumeClose(lexer.TOKEN_MAP_CLOSE, "'}'")
	return m
}

// previousKeyToken is a best-effort token reference for duplicate-key
// warnings; since keys can themselves be composed of a single token, the
// token immediately preceding the value just parsed is close enough for a
// line/column hint.
func (p *Parser) previousKeyToken() lexer.Token {
	if p.current == 0 {
		return p.peek()
	}
	return p.tokens[p.current-1]
}

// parseList consumes '[' [COMMENT] [VTYPE] VALUE* ']'.
func (p *Parser) parseList() *model.List {
	p.advance() // consume '['

	var comment string
	if p.check(lexer.TOKEN_COMMENT) {
		comment, _ = p.advance().Literal.(string)
	}

	vtype := ""
	if p.isTypeNameToken() {
		vtype = p.parseVTypeToken()
	}

	l := model.NewList(vtype)
	l.Comment = comment

	for !p.check(lexer.TOKEN_LIST_CLOSE) && !p.isAtEnd() {
		v := p.parseValue()
		l.Append(coerceIntToReal(v, vtype))
	}
	p.consumeClose(lexer.TOKEN_LIST_CLOSE, "']'")
	return l
}

// parseTable consumes '(' [COMMENT] IDENT VALUE* ')'. The value-token count must be a multiple of the referenced
// TClass's field count.
func (p *Parser) parseTable() *model.Table {
	openTok := p.advance() // consume '('

	var comment string
	if p.check(lexer.TOKEN_COMMENT) {
		comment, _ = p.advance().Literal.(string)
	}

	nameTok := p.peek()
	if !p.check(lexer.TOKEN_IDENT) {
		p.errorAt(diag.CodeParseMissingToken, "expected a ttype name after '('", nameTok)
		p.synchronizeToContainerClose(lexer.TOKEN_TABLE_CLOSE)
		p.consumeClose(lexer.TOKEN_TABLE_CLOSE, "')'")
		return model.NewTable("", 0)
	}
	name := p.advance().Lexeme

	tc, ok := p.doc.TClass(name)
	if !ok {
		p.errorAt(diag.CodeTypeUnknownTType, "unknown ttype "+name, nameTok)
		p.synchronizeToContainerClose(lexer.TOKEN_TABLE_CLOSE)
		p.consumeClose(lexer.TOKEN_TABLE_CLOSE, "')'")
		return model.NewTable(name, 0)
	}

	cols := len(tc.Fields)
	t := model.NewTable(name, cols)
	t.Comment = comment

	var cells []model.Value
	for !p.check(lexer.TOKEN_TABLE_CLOSE) && !p.isAtEnd() {
		cells = append(cells, p.parseValue())
	}
	p.consumeClose(lexer.TOKEN_TABLE_CLOSE, "')'")

	if cols == 0 {
		if len(cells) != 0 {
			p.errorAt(diag.CodeParseTableLen, "fieldless ttype "+name+" accepts no values", openTok)
			return t
		}
		t.AppendRow(nil)
		return t
	}

	if len(cells)%cols != 0 {
		p.errorAt(diag.CodeParseTableLen, "record length is not a multiple of ttype "+name+"'s field count", openTok)
		return t
	}
	for i := 0; i < len(cells); i += cols {
		row := cells[i : i+cols]
		for j, f := range tc.Fields {
			row[j] = coerceIntToReal(row[j], f.VType)
		}
		t.AppendRow(row)
	}
	return t
}

// parseKey consumes a single KEY production: Int, Date, DateTime, Str or
// Bytes.
func (p *Parser) parseKey() model.Value {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_INT:
		p.advance()
		return model.NewInt(tok.Literal.(int64))
	case lexer.TOKEN_STR:
		p.advance()
		return model.NewStr(tok.Literal.(string))
	case lexer.TOKEN_BYTES:
		p.advance()
		return model.NewBytes(tok.Literal.([]byte))
	case lexer.TOKEN_DATE:
		p.advance()
		return p.dateValue(tok)
	case lexer.TOKEN_DATETIME:
		p.advance()
		return p.dateTimeValue(tok)
	default:
		p.errorAt(diag.CodeParseBadKey, "expected a map key (int, date, datetime, str or bytes)", tok)
		p.advance()
		return model.Null()
	}
}

// parseValue consumes a single VALUE production.
func (p *Parser) parseValue() model.Value {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_NULL:
		p.advance()
		return model.Null()
	case lexer.TOKEN_BOOL:
		p.advance()
		return model.NewBool(tok.Literal.(bool))
	case lexer.TOKEN_INT:
		p.advance()
		return model.NewInt(tok.Literal.(int64))
	case lexer.TOKEN_REAL:
		p.advance()
		return model.NewReal(tok.Literal.(float64))
	case lexer.TOKEN_STR:
		p.advance()
		return model.NewStr(tok.Literal.(string))
	case lexer.TOKEN_BYTES:
		p.advance()
		return model.NewBytes(tok.Literal.([]byte))
	case lexer.TOKEN_DATE:
		p.advance()
		return p.dateValue(tok)
	case lexer.TOKEN_DATETIME:
		p.advance()
		return p.dateTimeValue(tok)
	case lexer.TOKEN_MAP_OPEN:
		return model.MapValue(p.parseMap())
	case lexer.TOKEN_LIST_OPEN:
		return model.ListValue(p.parseList())
	case lexer.TOKEN_TABLE_OPEN:
		return model.TableValue(p.parseTable())
	default:
		p.errorAt(diag.CodeParseUnexpectedToken, "unexpected token "+tok.Type.String()+" where a value was expected", tok)
		p.advance()
		return model.Null()
	}
}

func (p *Parser) dateValue(tok lexer.Token) model.Value {
	lit, _ := tok.Literal.(lexer.DateLiteral)
	d, err := model.NewDate(lit.Year, lit.Month, lit.Day)
	if err != nil {
		p.errorAt(diag.CodeTypeRangeError, err.Error(), tok)
		return model.Null()
	}
	return model.DateValue(d)
}

func (p *Parser) dateTimeValue(tok lexer.Token) model.Value {
	lit, _ := tok.Literal.(lexer.DateTimeLiteral)
	dt, err := model.NewDateTime(lit.Year, lit.Month, lit.Day, lit.Hour, lit.Minute, lit.Second)
	if err != nil {
		p.errorAt(diag.CodeTypeRangeError, err.Error(), tok)
		return model.Null()
	}
	dt.HasOffset = lit.HasOffset
	dt.OffsetMinutes = lit.OffsetMinutes
	return model.DateTimeValue(dt)
}

// coerceIntToReal promotes an Int value to Real when it is being assigned
// into a slot declared vtype "real". Every other combination, including the reverse
// real-with-zero-fraction-into-int case, is left to the validator's
// strict/fix-types handling.
func coerceIntToReal(v model.Value, vtype string) model.Value {
	if vtype != "real" {
		return v
	}
	if i, ok := v.Int(); ok {
		return model.NewReal(float64(i))
	}
	return v
}

// Token-stream primitives: peek/previous/advance/check/match/consume.

func (p *Parser) peek() lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// consumeClose consumes the expected container-close token, reporting a
// missing-token error (rather than aborting) if it isn't there -- the
// caller has already drained the container's contents, so recovery just
// means not double-consuming whatever comes next.
func (p *Parser) consumeClose(t lexer.TokenType, label string) {
	if p.check(t) {
		p.advance()
		return
	}
	p.errorAt(diag.CodeParseMissingToken, "expected "+label, p.peek())
}

func (p *Parser) errorAt(code diag.Code, message string, tok lexer.Token) {
	p.sink.Report(diag.New(code, categoryFor(code), message, tok.Line, tok.Column))
}

func categoryFor(code diag.Code) diag.Category {
	switch {
	case strings.HasPrefix(string(code), "E-TYPE-"):
		return diag.CategoryType
	case strings.HasPrefix(string(code), "E-IMP-"):
		return diag.CategoryImport
	default:
		return diag.CategoryParse
	}
}
