package dedupe

import (
	"strings"

	"visitdedupe/domain/table"
)

// The six columns whose normalized values identify one logical house visit.
// Order is fixed; it is part of the composite key definition.
var DefaultKeyColumns = []string{
	"CHILD ID",
	"HOUSE VISIT DATE",
	"VISIT DATE",
	"GROUP ID",
	"TMO Name",
	"YM Name",
}

// DefaultDateColumns are the key columns normalized as dates rather than
// plain strings.
var DefaultDateColumns = []string{"HOUSE VISIT DATE", "VISIT DATE"}

// childIDColumn gets the float-suffix treatment on top of string normalization
const childIDColumn = "CHILD ID"

// keySeparator joins normalized key fields. The unit separator cannot appear
// in a normalized value because normalization strips control characters.
const keySeparator = "\x1f"

// DatePolicy controls what happens when a date key field does not parse
type DatePolicy string

const (
	// DatePolicyLenient uses the normalized raw string as the key component
	// when date parsing fails. This matches the original tool's behavior.
	DatePolicyLenient DatePolicy = "lenient"
	// DatePolicyStrict fails the whole run with a ValueError instead
	DatePolicyStrict DatePolicy = "strict"
)

// Options configures a dedupe pass
type Options struct {
	KeyColumns  []string
	DateColumns []string
	Policy      DatePolicy
}

// DefaultOptions returns the house-visit key configuration with the lenient
// date policy
func DefaultOptions() Options {
	return Options{
		KeyColumns:  DefaultKeyColumns,
		DateColumns: DefaultDateColumns,
		Policy:      DatePolicyLenient,
	}
}

// Result is the outcome of one dedupe pass. Kept and Removed share the input
// schema and are disjoint; interleaved back by original position they equal
// the input.
type Result struct {
	Kept    table.Table
	Removed table.Table

	RowsBefore   int
	RowsAfter    int
	RemovedCount int

	// Occurrences holds the total occurrence count per distinct composite
	// key, in first-seen order. Entries greater than 1 are duplicate groups.
	Occurrences []int
}

// Deduplicate partitions the table into first occurrences and later
// duplicates of each composite key, preserving original relative order in
// both outputs. The input table is not modified. All failures are reported
// before any output exists: a missing key column yields *SchemaError, and an
// unparseable date under the strict policy yields *ValueError.
func Deduplicate(t table.Table, opts Options) (Result, error) {
	if len(opts.KeyColumns) == 0 {
		opts = DefaultOptions()
	}
	if opts.Policy == "" {
		opts.Policy = DatePolicyLenient
	}

	if missing := t.MissingColumns(opts.KeyColumns); len(missing) > 0 {
		return Result{}, &SchemaError{Missing: missing}
	}

	keyIdx := make([]int, len(opts.KeyColumns))
	for i, name := range opts.KeyColumns {
		idx, _ := t.ColumnIndex(name)
		keyIdx[i] = idx
	}
	isDate := make([]bool, len(opts.KeyColumns))
	for i, name := range opts.KeyColumns {
		for _, d := range opts.DateColumns {
			if name == d {
				isDate[i] = true
			}
		}
	}

	// Build every key up front so strict-policy failures surface before any
	// row is partitioned.
	keys := make([]string, len(t.Rows))
	parts := make([]string, len(opts.KeyColumns))
	for rowIdx := range t.Rows {
		for i, name := range opts.KeyColumns {
			raw := cellAt(t.Rows[rowIdx], keyIdx[i])
			part, err := normalizeKeyField(rowIdx, name, raw, isDate[i], opts.Policy)
			if err != nil {
				return Result{}, err
			}
			parts[i] = part
		}
		keys[rowIdx] = strings.Join(parts, keySeparator)
	}

	kept := table.New(t.Headers)
	removed := table.New(t.Headers)
	seen := make(map[string]int, len(t.Rows))
	var occurrences []int

	for rowIdx, row := range t.Rows {
		key := keys[rowIdx]
		if pos, dup := seen[key]; dup {
			occurrences[pos]++
			removed.Append(row)
			continue
		}
		seen[key] = len(occurrences)
		occurrences = append(occurrences, 1)
		kept.Append(row)
	}

	return Result{
		Kept:         kept,
		Removed:      removed,
		RowsBefore:   t.RowCount(),
		RowsAfter:    kept.RowCount(),
		RemovedCount: removed.RowCount(),
		Occurrences:  occurrences,
	}, nil
}

// normalizeKeyField produces one key component for a single cell
func normalizeKeyField(rowIdx int, column, raw string, isDate bool, policy DatePolicy) (string, error) {
	if isDate {
		if canonical, ok := normalizeDate(raw); ok {
			return canonical, nil
		}
		if policy == DatePolicyStrict {
			return "", &ValueError{Row: rowIdx, Column: column, Value: raw}
		}
		return normalizeString(raw), nil
	}
	if column == childIDColumn {
		return normalizeChildID(raw), nil
	}
	return normalizeString(raw), nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
