// Package model defines the UXF data model: the tagged Value union and the
// List, Map, Table, TClass, Field and Document types built from it. It has no
// dependency on any other uxf package, the way internal/compiler/ast has no
// dependency on anything but the lexer token it borrows a source location
// from.
package model

import "unicode"

// ReservedWords is the set of identifiers that MUST NOT be used as a ttype
// name, field name, or import alias.
var ReservedWords = map[string]bool{
	"bool": true, "bytes": true, "date": true, "datetime": true,
	"int": true, "list": true, "map": true, "null": true,
	"real": true, "str": true, "table": true, "yes": true, "no": true,
}

// MaxIdentifierLength is the upper bound on identifier length.
const MaxIdentifierLength = 60

// IsValidIdentifier reports whether s is a legal ttype/field/import name:
// 1-60 UTF letters/digits/underscores, starting with a letter or underscore,
// case-sensitive, and not a reserved word.
func IsValidIdentifier(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 || len(runes) > MaxIdentifierLength {
		return false
	}
	first := runes[0]
	if !unicode.IsLetter(first) && first != '_' {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return !ReservedWords[s]
}

// KTypes is the set of valid Map key-type names.
var KTypes = map[string]bool{
	"int": true, "date": true, "datetime": true, "str": true, "bytes": true,
}

// ScalarVTypes is the set of built-in value-type names usable as a List/Map
// vtype or Field type, excluding "null" (which is never a declarable type,
// per List attributes) and excluding user ttype names, which are
// validated separately against a Document's tclasses table.
var ScalarVTypes = map[string]bool{
	"bool": true, "int": true, "real": true, "date": true, "datetime": true,
	"str": true, "bytes": true, "list": true, "map": true, "table": true,
}

// IsBuiltinVType reports whether name is one of the built-in vtype names.
func IsBuiltinVType(name string) bool {
	return ScalarVTypes[name]
}

// IsBuiltinKType reports whether name is one of the built-in ktype names.
func IsBuiltinKType(name string) bool {
	return KTypes[name]
}
