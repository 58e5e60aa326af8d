// Package importresolver implements the UXF import directive: fetching a
// system, relative, absolute or HTTP(S) source, inlining its ttype
// definitions, detecting cycles, and transparently gunzipping `.gz`
// sources. Name conflicts between imported ttypes are reported by the
// parser as it merges them into the document.
package importresolver

import "github.com/uxf-lang/uxf/internal/uxf/model"

// bundle is a built-in system import: a fixed set of ttype definitions
// shipped with the implementation rather than fetched from disk or network.
type bundle []*model.TClass

// SystemRegistry contains every system import name this implementation
// recognizes, keyed by the bare name used in an import directive. ttype-test
// is required by the format's own conformance suite; the others are
// reusable schema building blocks shipped for convenience, a fixed table
// rather than anything discovered dynamically.
var SystemRegistry = map[string]bundle{
	"ttype-test": {
		{Name: "ttype-test", Fields: []model.Field{
			{Name: "one"},
			{Name: "two", VType: "int"},
			{Name: "three", VType: "str"},
		}},
	},
	"geo": {
		{Name: "Point", Fields: []model.Field{
			{Name: "x", VType: "real"},
			{Name: "y", VType: "real"},
		}},
	},
	"contact": {
		{Name: "Address", Fields: []model.Field{
			{Name: "street", VType: "str"},
			{Name: "city", VType: "str"},
			{Name: "region", VType: "str"},
			{Name: "postcode", VType: "str"},
			{Name: "country", VType: "str"},
		}},
	},
}

// SystemNames returns every registered system import name.
func SystemNames() []string {
	names := make([]string, 0, len(SystemRegistry))
	for name := range SystemRegistry {
		names = append(names, name)
	}
	return names
}

// isSystemSource reports whether source names a system import rather than a
// path or URL.
func isSystemSource(source string) bool {
	for _, r := range source {
		if r == '.' || r == '/' || r == '\\' {
			return false
		}
	}
	return true
}
