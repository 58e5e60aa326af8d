// Package parser implements the recursive-descent UXF parser, transforming a
// lexer.Token stream into a model.Document: a token-cursor Parser with
// consume/match/check helpers and panic-mode resynchronization.
package parser

import "github.com/uxf-lang/uxf/internal/uxf/lexer"

// syncPoints is the set of token types the parser resynchronizes to after a
// fatal structural error: the start of the next ttype definition, import
// directive, or a container boundary. Recovery happens by skipping forward
// to a recognizable boundary rather than aborting the whole parse.
var syncPoints = map[lexer.TokenType]bool{
	lexer.TOKEN_TTYPE_BEGIN:      true,
	lexer.TOKEN_IMPORT_DIRECTIVE: true,
	lexer.TOKEN_MAP_OPEN:         true,
	lexer.TOKEN_LIST_OPEN:        true,
	lexer.TOKEN_TABLE_OPEN:       true,
	lexer.TOKEN_EOF:              true,
}

// synchronize implements panic-mode error recovery: advance past the
// offending token, then keep advancing until a recognizable boundary is
// reached.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if syncPoints[p.peek().Type] {
			return
		}
		p.advance()
	}
}

// synchronizeToContainerClose skips tokens until the matching close token
// (MAP_CLOSE, LIST_CLOSE or TABLE_CLOSE) or EOF, used when a container body
// cannot be parsed further but its closing delimiter should still be
// consumed so outer parsing can continue.
func (p *Parser) synchronizeToContainerClose(closeType lexer.TokenType) {
	for !p.isAtEnd() && !p.check(closeType) {
		p.advance()
	}
}
