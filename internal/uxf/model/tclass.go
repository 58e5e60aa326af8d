package model

// Field is one column of a TClass: a name and an optional declared type.
// An empty VType means the field accepts any Value (or null).
type Field struct {
	Name  string
	VType string
}

// TClass holds a user-defined table schema (a "ttype"): its name, its
// ordered fields, and an optional doc comment. TClasses are
// owned by the Document that defines or imports them; Tables and Field
// vtypes refer to a TClass only by name rather than embedding it directly.
type TClass struct {
	Name    string
	Fields  []Field
	Comment string
}

// SameShape reports whether two TClasses have identical field names and
// vtypes in the same order, used to decide whether two ttype definitions
// with the same name (from different import sources) are a
// silently-coalesced duplicate or a genuine conflict.
func (t *TClass) SameShape(o *TClass) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Fields) != len(o.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i] != o.Fields[i] {
			return false
		}
	}
	return true
}

// FieldIndex returns the index of the named field, or -1.
func (t *TClass) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
