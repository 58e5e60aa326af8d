package model

// Table is an ordered sequence of fixed-length records, each record holding
// one Value per field of the table's TClass. Records are kept as one flat
// slice of length rows*cols rather than a slice of row slices, to keep the
// hot path cache-friendly; (row, col) addressing is exposed through At/Set.
//
// TType names the table's TClass by name rather than holding a pointer to
// it directly: the TClass itself lives in the owning Document's TClasses
// table, and callers resolve TType through Document.TClass.
type Table struct {
	TType   string
	Comment string

	cols  int
	cells []Value
}

// NewTable creates an empty Table (zero rows) for the named ttype with the
// given field count.
func NewTable(ttype string, cols int) *Table {
	return &Table{TType: ttype, cols: cols}
}

// Cols returns the number of fields (columns) per record.
func (t *Table) Cols() int { return t.cols }

// Rows returns the number of records currently stored. For a fieldless
// table, each record contributes one sentinel cell to the flat storage so
// that row count is still recoverable without a separate counter.
func (t *Table) Rows() int {
	if t.cols == 0 {
		return len(t.cells)
	}
	return len(t.cells) / t.cols
}

// At returns the value at (row, col).
func (t *Table) At(row, col int) Value { return t.cells[row*t.cols+col] }

// Set replaces the value at (row, col).
func (t *Table) Set(row, col int, v Value) { t.cells[row*t.cols+col] = v }

// AppendRow appends one record. len(vals) must equal Cols(), except for a
// fieldless table (Cols() == 0), which only accepts an empty record.
func (t *Table) AppendRow(vals []Value) {
	if t.cols == 0 {
		// A fieldless table's records carry no cells; appending a row just
		// increments the record count via a sentinel column-less cell.
		t.cells = append(t.cells, Value{})
		return
	}
	t.cells = append(t.cells, vals...)
}

// Equal reports whether two tables share the same ttype and elementwise
// equal cell contents in the same order.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.TType != o.TType || t.cols != o.cols || len(t.cells) != len(o.cells) {
		return false
	}
	for i := range t.cells {
		if !t.cells[i].Equal(o.cells[i]) {
			return false
		}
	}
	return true
}
