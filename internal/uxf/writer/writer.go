package writer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/uxf-lang/uxf/internal/uxf/model"
)

// Write renders doc as canonical UXF text under the given Format. A nil format uses DefaultFormat().
func Write(doc *model.Document, format *Format) string {
	if format == nil {
		format = DefaultFormat()
	}
	w := &writer{format: format, doc: doc}
	return w.write()
}

type writer struct {
	format *Format
	doc    *model.Document
	buf    strings.Builder
}

func (w *writer) write() string {
	w.writeHeader()
	w.writeFileComment()
	w.writeImportsAndTTypes()
	w.buf.WriteString(w.formatValue(w.doc.Value, 0))
	w.buf.WriteString("\n")
	return w.buf.String()
}

// writeHeader emits ordering rule 1: 'uxf <version>[
// <custom>]\n'.
func (w *writer) writeHeader() {
	w.buf.WriteString("uxf ")
	w.buf.WriteString(w.doc.Version)
	if w.doc.Custom != "" {
		w.buf.WriteString(" ")
		w.buf.WriteString(w.doc.Custom)
	}
	w.buf.WriteString("\n")
}

// writeFileComment emits ordering rule 2.
func (w *writer) writeFileComment() {
	if w.doc.Comment == "" {
		return
	}
	w.buf.WriteString("#")
	w.buf.WriteString(w.quoteComment(w.doc.Comment))
	w.buf.WriteString("\n")
}

// writeImportsAndTTypes emits ordering rules 3 and 4: imports (unless
// replace_imports expands them away) then every ttype in insertion order.
// When replace_imports is set, an imported ttype is emitted as a full
// TTYPEDEF alongside locally-defined ones instead of as an import
// directive, per.5 rule 3.
func (w *writer) writeImportsAndTTypes() {
	if !w.format.ReplaceImports {
		for _, src := range w.doc.Imports {
			w.buf.WriteString("! ")
			w.buf.WriteString(src)
			w.buf.WriteString("\n")
		}
	}

	for _, name := range w.doc.TClassNames() {
		if !w.format.ReplaceImports {
			if _, fromImport := w.doc.ImportSourceOf(name); fromImport {
				continue
			}
		}
		tc, _ := w.doc.TClass(name)
		w.writeTTypeDef(tc)
	}
}

func (w *writer) writeTTypeDef(tc *model.TClass) {
	w.buf.WriteString("=")
	if tc.Comment != "" {
		w.buf.WriteString("#")
		w.buf.WriteString(w.quoteComment(tc.Comment))
		w.buf.WriteString(" ")
	}
	w.buf.WriteString(tc.Name)
	for _, f := range tc.Fields {
		w.buf.WriteString(" ")
		w.buf.WriteString(f.Name)
		if f.VType != "" {
			w.buf.WriteString(":")
			w.buf.WriteString(f.VType)
		}
	}
	w.buf.WriteString("\n")
}

// formatValue renders a single value at the given indent level, returning
// text the caller places inline or at the start of a new indented line.
func (w *writer) formatValue(v model.Value, level int) string {
	switch v.Kind() {
	case model.KindNull:
		return "?"
	case model.KindBool:
		b, _ := v.Bool()
		return w.formatBool(b)
	case model.KindInt:
		i, _ := v.Int()
		return strconv.FormatInt(i, 10)
	case model.KindReal:
		r, _ := v.Real()
		return w.formatReal(r)
	case model.KindDate:
		d, _ := v.Date()
		return d.String()
	case model.KindDateTime:
		dt, _ := v.DateTime()
		return dt.String()
	case model.KindStr:
		s, _ := v.Str()
		return "<" + escapeString(s) + ">"
	case model.KindBytes:
		b, _ := v.Bytes()
		return formatBytes(b)
	case model.KindList:
		l, _ := v.List()
		return w.formatList(l, level)
	case model.KindMap:
		m, _ := v.Map()
		return w.formatMap(m, level)
	case model.KindTable:
		t, _ := v.Table()
		return w.formatTable(t, level)
	default:
		return "?"
	}
}

func (w *writer) formatBool(b bool) string {
	if w.format.UseTrueFalse {
		if b {
			return "true"
		}
		return "false"
	}
	if b {
		return "yes"
	}
	return "no"
}

// formatReal honors RealDP, defaulting (RealDP < 0) to minimal round-trip
// precision except that an integral value is always emitted with one
// fractional digit so it re-parses as real rather than int.
func (w *writer) formatReal(r float64) string {
	if w.format.RealDP >= 0 {
		return strconv.FormatFloat(r, 'f', w.format.RealDP, 64)
	}
	if r == math.Trunc(r) && !math.IsInf(r, 0) {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	return strconv.FormatFloat(r, 'g', -1, 64)
}

// escapeString applies the three XML entities, and no others.
func escapeString(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func (w *writer) quoteComment(s string) string {
	return "<" + escapeString(s) + ">"
}

// formatBytes renders bytes as space-separated uppercase hex pairs on one
// line, enclosed in the '(:' ... ':)' delimiters; it does not wrap.
func formatBytes(b []byte) string {
	if len(b) == 0 {
		return "(::)"
	}
	pairs := make([]string, len(b))
	for i, by := range b {
		pairs[i] = fmt.Sprintf("%02X", by)
	}
	return "(:" + strings.Join(pairs, " ") + ":)"
}

// fits reports whether text can be rendered inline: no embedded newline and
// within the max_short_len budget.
func (w *writer) fits(text string) bool {
	return len(text) <= w.format.MaxShortLen && !strings.Contains(text, "\n")
}

func (w *writer) indentStr(level int) string {
	return strings.Repeat(w.format.Indent, level)
}

func (w *writer) formatList(l *model.List, level int) string {
	items := make([]string, l.Len())
	for i := 0; i < l.Len(); i++ {
		items[i] = w.formatValue(l.At(i), level+1)
	}

	var head strings.Builder
	head.WriteString("[")
	if l.VType != "" {
		head.WriteString(l.VType)
	}

	inline := head.String()
	if l.VType != "" && len(items) > 0 {
		inline += " "
	}
	inline += strings.Join(items, " ") + "]"

	if l.Comment == "" && w.fits(inline) {
		return inline
	}

	var b strings.Builder
	b.WriteString("[")
	inner := w.indentStr(level + 1)
	if l.Comment != "" {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString("#")
		b.WriteString(w.quoteComment(l.Comment))
	}
	if l.VType != "" {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(l.VType)
	}
	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(item)
	}
	b.WriteString("\n")
	b.WriteString(w.indentStr(level))
	b.WriteString("]")
	return b.String()
}

func (w *writer) formatMap(m *model.Map, level int) string {
	entries := m.Entries()
	pairs := make([]string, len(entries))
	for i, e := range entries {
		key := w.formatValue(e.Key, level+1)
		val := w.formatValue(e.Value, level+1)
		pairs[i] = key + " " + val
	}

	var head strings.Builder
	head.WriteString("{")
	if m.KType != "" {
		head.WriteString(m.KType)
		if m.VType != "" {
			head.WriteString(" ")
			head.WriteString(m.VType)
		}
	}

	inline := head.String()
	if m.KType != "" && len(pairs) > 0 {
		inline += " "
	}
	inline += strings.Join(pairs, " ") + "}"

	if m.Comment == "" && w.fits(inline) {
		return inline
	}

	var b strings.Builder
	b.WriteString("{")
	inner := w.indentStr(level + 1)
	if m.Comment != "" {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString("#")
		b.WriteString(w.quoteComment(m.Comment))
	}
	if m.KType != "" {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(m.KType)
		if m.VType != "" {
			b.WriteString(" ")
			b.WriteString(m.VType)
		}
	}
	for _, pair := range pairs {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(pair)
	}
	b.WriteString("\n")
	b.WriteString(w.indentStr(level))
	b.WriteString("}")
	return b.String()
}

func (w *writer) formatTable(t *model.Table, level int) string {
	if t.Cols() == 0 {
		return "(" + t.TType + ")"
	}

	rows := make([]string, t.Rows())
	for r := 0; r < t.Rows(); r++ {
		cells := make([]string, t.Cols())
		for col := 0; col < t.Cols(); col++ {
			cells[col] = w.formatValue(t.At(r, col), level+1)
		}
		rows[r] = strings.Join(cells, " ")
	}

	head := "(" + t.TType
	inline := head
	if len(rows) > 0 {
		inline += " " + strings.Join(rows, " ")
	}
	inline += ")"

	if t.Comment == "" && w.fits(inline) {
		return inline
	}

	var b strings.Builder
	b.WriteString("(")
	inner := w.indentStr(level + 1)
	if t.Comment != "" {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString("#")
		b.WriteString(w.quoteComment(t.Comment))
	}
	b.WriteString("\n")
	b.WriteString(inner)
	b.WriteString(t.TType)
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(row)
	}
	b.WriteString("\n")
	b.WriteString(w.indentStr(level))
	b.WriteString(")")
	return b.String()
}
