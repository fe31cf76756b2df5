package tabular

// Table is an ordered set of named columns over string cells. It is the
// common shape between the flexible reader, the join, and the typed domain
// decoders: every cell stays a string until a decoder gives it a type.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given column names.
func New(columns ...string) Table {
	return Table{Columns: columns}
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// Index returns the position of the named column, or -1 if absent.
func (t Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at the given row for the named column. Absent
// columns and out-of-range rows yield the empty string.
func (t Table) Cell(row int, name string) string {
	i := t.Index(name)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// HasColumn reports whether the named column exists.
func (t Table) HasColumn(name string) bool { return t.Index(name) >= 0 }
