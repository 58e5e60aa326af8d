// Package validator enforces the UXF data model's container/ttype
// constraints: a Checker struct that walks a tree from the root down and reports
// through an injected sink rather than returning a single error, with a
// permissive "fix types" mode alongside the strict default.
package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/uxf-lang/uxf/internal/uxf/diag"
	"github.com/uxf-lang/uxf/internal/uxf/model"
)

// Mode selects strict rejection or best-effort coercion of type mismatches.
type Mode int

const (
	// ModeStrict reports every mismatch as fatal.
	ModeStrict Mode = iota
	// ModeFixTypes attempts int<->real coercion and string "naturalize"
	// parsing before falling back to an error.
	ModeFixTypes
)

// Options configures a Checker.
type Options struct {
	Mode Mode
	// DropUnused removes ttypes that are never referenced by a Table, List
	// vtype, Map vtype, or Field vtype anywhere in the document, after
	// warning about them.
	DropUnused bool
}

// Checker walks a model.Document and enforces its structural and type
// constraints.
type Checker struct {
	doc  *model.Document
	sink *diag.Sink
	opts Options

	used           map[string]bool
	reportedUnknown map[string]bool
}

// New creates a Checker for doc, reporting through sink.
func New(doc *model.Document, sink *diag.Sink, opts Options) *Checker {
	return &Checker{
		doc:             doc,
		sink:            sink,
		opts:            opts,
		used:            make(map[string]bool),
		reportedUnknown: make(map[string]bool),
	}
}

// Check runs the full validation pass: container/ttype conformance over the
// root value, then unused-ttype detection.
func (c *Checker) Check() {
	c.markFieldReferences()
	c.checkValue(c.doc.Value)
	c.checkUnusedTTypes()
}

// markFieldReferences marks every ttype name mentioned by another TClass's
// field vtype as used, so a ttype that exists purely to be nested inside
// another (and is never directly instantiated as a table in the document
// body) is not flagged as dead.
func (c *Checker) markFieldReferences() {
	for _, name := range c.doc.TClassNames() {
		tc, _ := c.doc.TClass(name)
		for _, f := range tc.Fields {
			if f.VType != "" && !model.IsBuiltinVType(f.VType) {
				c.used[f.VType] = true
			}
		}
	}
}

func (c *Checker) checkValue(v model.Value) {
	switch v.Kind() {
	case model.KindList:
		l, _ := v.List()
		c.checkList(l)
	case model.KindMap:
		m, _ := v.Map()
		c.checkMap(m)
	case model.KindTable:
		t, _ := v.Table()
		c.checkTable(t)
	}
}

func (c *Checker) checkList(l *model.List) {
	if l == nil {
		return
	}
	c.validateTypeName(l.VType)
	for i := 0; i < l.Len(); i++ {
		v := l.At(i)
		conformed := c.conform(v, l.VType, "list element")
		if !conformed.Equal(v) {
			l.Set(i, conformed)
		}
		c.checkValue(conformed)
	}
}

func (c *Checker) checkMap(m *model.Map) {
	if m == nil {
		return
	}
	if m.KType != "" && !model.IsBuiltinKType(m.KType) {
		c.reportUnknown(m.KType, "map ktype")
	}
	c.validateTypeName(m.VType)
	for _, e := range m.Entries() {
		c.checkKey(e.Key, m.KType)
		conformed := c.conform(e.Value, m.VType, "map value")
		if !conformed.Equal(e.Value) {
			m.Set(e.Key, conformed)
		}
		c.checkValue(conformed)
	}
}

func (c *Checker) checkKey(key model.Value, ktype string) {
	if ktype == "" {
		return
	}
	if !matchesKType(key, ktype) {
		c.sink.Report(diag.New(diag.CodeTypeKTypeMismatch, diag.CategoryType,
			"map key of kind "+key.Kind().String()+" does not match declared ktype "+ktype, 0, 0))
	}
}

func matchesKType(key model.Value, ktype string) bool {
	return key.Kind().String() == ktype
}

func (c *Checker) checkTable(t *model.Table) {
	if t == nil {
		return
	}
	tc, ok := c.doc.TClass(t.TType)
	if !ok {
		c.reportUnknown(t.TType, "table ttype")
		return
	}
	c.used[t.TType] = true

	cols := t.Cols()
	if cols != len(tc.Fields) {
		c.sink.Report(diag.New(diag.CodeTypeFieldCount, diag.CategoryType,
			"table for ttype "+t.TType+" has "+strconv.Itoa(cols)+" columns but the ttype declares "+strconv.Itoa(len(tc.Fields))+" fields", 0, 0))
		return
	}
	for r := 0; r < t.Rows(); r++ {
		for col := 0; col < cols; col++ {
			f := tc.Fields[col]
			v := t.At(r, col)
			conformed := c.conform(v, f.VType, "field "+f.Name)
			if !conformed.Equal(v) {
				t.Set(r, col, conformed)
			}
			c.checkValue(conformed)
		}
	}
}

// validateTypeName checks that a non-empty vtype/ktype name is either a
// built-in or a known ttype, reporting
// E-TYPE-UNKNOWN-TTYPE exactly once per offending name per Check() pass.
func (c *Checker) validateTypeName(name string) {
	if name == "" || model.IsBuiltinVType(name) {
		return
	}
	if _, ok := c.doc.TClass(name); !ok {
		c.reportUnknown(name, "vtype")
		return
	}
	c.used[name] = true
}

func (c *Checker) reportUnknown(name, context string) {
	if c.reportedUnknown[name] {
		return
	}
	c.reportedUnknown[name] = true
	c.sink.Report(diag.New(diag.CodeTypeUnknownTType, diag.CategoryType,
		"unknown "+context+" "+name, 0, 0))
}

// conform checks v against a declared vtype, returning a possibly-coerced
// replacement value. Null is always assignable. An empty vtype means "any"
// (no constraint).
func (c *Checker) conform(v model.Value, vtype, context string) model.Value {
	if vtype == "" || v.IsNull() {
		return v
	}

	if !model.IsBuiltinVType(vtype) {
		if _, ok := c.doc.TClass(vtype); !ok {
			return v // already reported by validateTypeName
		}
		if v.Kind() != model.KindTable || v.TypeName() != vtype {
			c.mismatch(context, vtype, v)
		}
		return v
	}

	switch vtype {
	case "bool":
		return c.conformScalar(v, model.KindBool, vtype, context, naturalizeBool)
	case "int":
		return c.conformInt(v, context)
	case "real":
		return c.conformReal(v, context)
	case "date":
		return c.conformScalar(v, model.KindDate, vtype, context, naturalizeDate)
	case "datetime":
		return c.conformScalar(v, model.KindDateTime, vtype, context, naturalizeDateTime)
	case "str":
		if v.Kind() != model.KindStr {
			c.mismatch(context, vtype, v)
		}
		return v
	case "bytes":
		if v.Kind() != model.KindBytes {
			c.mismatch(context, vtype, v)
		}
		return v
	case "list":
		if v.Kind() != model.KindList {
			c.mismatch(context, vtype, v)
		}
		return v
	case "map":
		if v.Kind() != model.KindMap {
			c.mismatch(context, vtype, v)
		}
		return v
	case "table":
		if v.Kind() != model.KindTable {
			c.mismatch(context, vtype, v)
		}
		return v
	default:
		return v
	}
}

// conformScalar handles the built-in scalar kinds that can be naturalized
// from a Str when the validator runs in ModeFixTypes.
func (c *Checker) conformScalar(v model.Value, want model.Kind, vtype, context string, naturalize func(string) (model.Value, bool)) model.Value {
	if v.Kind() == want {
		return v
	}
	if c.opts.Mode == ModeFixTypes && v.Kind() == model.KindStr {
		s, _ := v.Str()
		if fixed, ok := naturalize(s); ok {
			c.warnFixed(context, vtype)
			return fixed
		}
	}
	c.mismatch(context, vtype, v)
	return v
}

// conformInt handles the "int" vtype, including the fix-types
// real-with-zero-fraction truncation: rejected by default, coerced to int
// when fix-types mode is enabled.
func (c *Checker) conformInt(v model.Value, context string) model.Value {
	if v.Kind() == model.KindInt {
		return v
	}
	if c.opts.Mode == ModeFixTypes {
		if r, ok := v.Real(); ok && r == float64(int64(r)) {
			c.warnFixed(context, "int")
			return model.NewInt(int64(r))
		}
		if s, ok := v.Str(); ok {
			if fixed, ok := naturalizeInt(s); ok {
				c.warnFixed(context, "int")
				return fixed
			}
		}
	}
	c.mismatch(context, "int", v)
	return v
}

// conformReal handles the "real" vtype. Int promotion is already done at
// parse time, but this guards API-built
// trees that bypass the parser.
func (c *Checker) conformReal(v model.Value, context string) model.Value {
	if v.Kind() == model.KindReal {
		return v
	}
	if i, ok := v.Int(); ok {
		return model.NewReal(float64(i))
	}
	if c.opts.Mode == ModeFixTypes {
		if s, ok := v.Str(); ok {
			if fixed, ok := naturalizeReal(s); ok {
				c.warnFixed(context, "real")
				return fixed
			}
		}
	}
	c.mismatch(context, "real", v)
	return v
}

func (c *Checker) mismatch(context, vtype string, v model.Value) {
	c.sink.Report(diag.New(diag.CodeTypeMismatch, diag.CategoryType,
		context+" of kind "+v.Kind().String()+" does not match declared type "+vtype, 0, 0))
}

func (c *Checker) warnFixed(context, vtype string) {
	c.sink.Report(diag.NewWarning(diag.CodeWarnFixType, diag.CategoryWarning,
		context+" coerced to "+vtype, 0, 0))
}

// checkUnusedTTypes reports (and optionally drops) any ttype never
// referenced by a table, list/map vtype, or another ttype's field vtype.
func (c *Checker) checkUnusedTTypes() {
	for _, name := range c.doc.TClassNames() {
		if c.used[name] {
			continue
		}
		c.sink.Report(diag.NewWarning(diag.CodeWarnUnusedTType, diag.CategoryWarning,
			"ttype "+name+" is never used", 0, 0))
		if c.opts.DropUnused {
			c.doc.DropTClass(name)
		}
	}
}

// naturalize helpers): an empty
// string is always Str(""), never promoted to Null.

var dateRE = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
var dateTimeRE = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2})(?::(\d{2}))?(Z|[+-]\d{2}(?::?\d{2})?)?$`)

func naturalizeBool(s string) (model.Value, bool) {
	switch s {
	case "yes", "true":
		return model.NewBool(true), true
	case "no", "false":
		return model.NewBool(false), true
	default:
		return model.Value{}, false
	}
}

func naturalizeInt(s string) (model.Value, bool) {
	if s == "" {
		return model.Value{}, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return model.Value{}, false
	}
	return model.NewInt(i), true
}

func naturalizeReal(s string) (model.Value, bool) {
	if s == "" {
		return model.Value{}, false
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Value{}, false
	}
	return model.NewReal(r), true
}

func naturalizeDate(s string) (model.Value, bool) {
	m := dateRE.FindStringSubmatch(s)
	if m == nil {
		return model.Value{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	date, err := model.NewDate(y, mo, d)
	if err != nil {
		return model.Value{}, false
	}
	return model.DateValue(date), true
}

func naturalizeDateTime(s string) (model.Value, bool) {
	m := dateTimeRE.FindStringSubmatch(s)
	if m == nil {
		return model.Value{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	h, _ := strconv.Atoi(m[4])
	mi, _ := strconv.Atoi(m[5])
	sec := 0
	if m[6] != "" {
		sec, _ = strconv.Atoi(m[6])
	}
	dt, err := model.NewDateTime(y, mo, d, h, mi, sec)
	if err != nil {
		return model.Value{}, false
	}
	if off := m[7]; off != "" {
		dt.HasOffset = true
		if off != "Z" {
			dt.OffsetMinutes = parseOffsetMinutes(off)
		}
	}
	return model.DateTimeValue(dt), true
}

func parseOffsetMinutes(off string) int {
	sign := 1
	if strings.HasPrefix(off, "-") {
		sign = -1
	}
	off = strings.TrimLeft(off, "+-")
	off = strings.ReplaceAll(off, ":", "")
	if len(off) < 2 {
		return 0
	}
	hh, _ := strconv.Atoi(off[:2])
	mm := 0
	if len(off) >= 4 {
		mm, _ = strconv.Atoi(off[2:4])
	}
	return sign * (hh*60 + mm)
}
