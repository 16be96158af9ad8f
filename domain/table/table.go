package table

import (
	"strings"
)

// Table is an ordered collection of rows sharing one header schema. Row order
// is significant: it defines which occurrence of a duplicate key is "first".
type Table struct {
	Headers []string
	Rows    [][]string
}

// New creates an empty table with the given header schema
func New(headers []string) Table {
	h := make([]string, len(headers))
	copy(h, headers)
	return Table{Headers: h}
}

// FromRows builds a table from a raw row matrix where the first row is the
// header. Headers are trimmed; ragged data rows are padded to header width.
func FromRows(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	t := Table{Headers: headers, Rows: make([][]string, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		row := make([]string, len(headers))
		copy(row, raw)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ColumnIndex returns the position of a column by exact header name
func (t Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// MissingColumns reports which of the given column names are absent,
// preserving the order they were asked for
func (t Table) MissingColumns(names []string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := t.ColumnIndex(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell returns the value at the given row for the named column. Out-of-range
// access returns the empty string, matching how short rows read from a
// spreadsheet behave.
func (t Table) Cell(rowIdx int, column string) string {
	col, ok := t.ColumnIndex(column)
	if !ok || rowIdx < 0 || rowIdx >= len(t.Rows) {
		return ""
	}
	row := t.Rows[rowIdx]
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// RowCount returns the number of data rows
func (t Table) RowCount() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no data rows
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Append adds a row to the table. The row slice is referenced, not copied;
// callers that go on to mutate the slice must copy it themselves.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, row)
}
