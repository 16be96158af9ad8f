package dedupe

import (
	"fmt"
	"strings"
)

// SchemaError reports required key columns absent from the input table.
// Nothing is processed when the schema is invalid.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input is missing required key column(s): %s", strings.Join(e.Missing, ", "))
}

// ValueError reports a key-field value that could not be parsed under the
// strict date policy. Row is the 0-based data row index (header excluded).
type ValueError struct {
	Row    int
	Column string
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("row %d, column %q: cannot parse date value %q", e.Row, e.Column, e.Value)
}
