package model

import (
	"bytes"
	"fmt"
)

// Kind identifies which arm of the Value tagged union is populated.
// Value is implemented as a tagged union with one arm per kind, dispatching
// on Kind rather than a class hierarchy.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindDate
	KindDateTime
	KindStr
	KindBytes
	KindList
	KindMap
	KindTable
)

// String returns the canonical built-in type name for a Kind, as used for
// vtype/ktype matching and error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindStr:
		return "str"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindTable:
		return "table"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsKey reports whether values of this Kind may appear as a Map key.
func (k Kind) IsKey() bool {
	switch k {
	case KindInt, KindDate, KindDateTime, KindStr, KindBytes:
		return true
	default:
		return false
	}
}

// Value is a single UXF scalar or collection handle. Collection arms
// (List, Map, Table) hold owning pointers; the zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	r    float64
	date Date
	dt   DateTime
	s    string
	by   []byte
	list *List
	mp   *Map
	tbl  *Table
}

// Null returns the null value (the literal '?').
func Null() Value { return Value{kind: KindNull} }

// NewBool wraps a bool.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt wraps a signed 64-bit integer.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewReal wraps an IEEE-754 binary64 float.
func NewReal(r float64) Value { return Value{kind: KindReal, r: r} }

// DateValue wraps a Date.
func DateValue(d Date) Value { return Value{kind: KindDate, date: d} }

// DateTimeValue wraps a DateTime.
func DateTimeValue(dt DateTime) Value { return Value{kind: KindDateTime, dt: dt} }

// NewStr wraps a UTF-8 string, which may contain newlines.
func NewStr(s string) Value { return Value{kind: KindStr, s: s} }

// NewBytes wraps an arbitrary byte string.
func NewBytes(b []byte) Value { return Value{kind: KindBytes, by: b} }

// ListValue wraps a *List handle.
func ListValue(l *List) Value { return Value{kind: KindList, list: l} }

// MapValue wraps a *Map handle.
func MapValue(m *Map) Value { return Value{kind: KindMap, mp: m} }

// TableValue wraps a *Table handle.
func TableValue(t *Table) Value { return Value{kind: KindTable, tbl: t} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the wrapped bool and whether v is a Bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the wrapped int64 and whether v is an Int.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Real returns the wrapped float64 and whether v is a Real.
func (v Value) Real() (float64, bool) { return v.r, v.kind == KindReal }

// Date returns the wrapped Date and whether v is a Date.
func (v Value) Date() (Date, bool) { return v.date, v.kind == KindDate }

// DateTime returns the wrapped DateTime and whether v is a DateTime.
func (v Value) DateTime() (DateTime, bool) { return v.dt, v.kind == KindDateTime }

// Str returns the wrapped string and whether v is a Str.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindStr }

// Bytes returns the wrapped byte slice and whether v is Bytes.
func (v Value) Bytes() ([]byte, bool) { return v.by, v.kind == KindBytes }

// List returns the wrapped *List and whether v is a List.
func (v Value) List() (*List, bool) { return v.list, v.kind == KindList }

// Map returns the wrapped *Map and whether v is a Map.
func (v Value) Map() (*Map, bool) { return v.mp, v.kind == KindMap }

// Table returns the wrapped *Table and whether v is a Table.
func (v Value) Table() (*Table, bool) { return v.tbl, v.kind == KindTable }

// TypeName returns the vtype name that a field/container declaration of
// this exact kind would use. For Table values this is the table's ttype
// name rather than the literal string "table", since a typed slot declared
// with a ttype name is matched against the table's schema.
func (v Value) TypeName() string {
	if v.kind == KindTable && v.tbl != nil {
		return v.tbl.TType
	}
	return v.kind.String()
}

// Equal reports deep structural equality between two values, as required by
// the round-trip property: equal kind and payload, and for
// collections, equal length, order and element-wise equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindReal:
		return v.r == o.r
	case KindDate:
		return v.date.Equal(o.date)
	case KindDateTime:
		return v.dt.Equal(o.dt)
	case KindStr:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.by, o.by)
	case KindList:
		return v.list.Equal(o.list)
	case KindMap:
		return v.mp.Equal(o.mp)
	case KindTable:
		return v.tbl.Equal(o.tbl)
	default:
		return false
	}
}
