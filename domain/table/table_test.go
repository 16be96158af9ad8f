package table

import (
	"testing"
)

func TestFromRows(t *testing.T) {
	tests := []struct {
		name        string
		input       [][]string
		wantHeaders []string
		wantRows    int
	}{
		{
			name:        "header and data rows",
			input:       [][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}},
			wantHeaders: []string{"A", "B"},
			wantRows:    2,
		},
		{
			name:        "headers trimmed",
			input:       [][]string{{" CHILD ID ", "GROUP ID"}, {"c1", "g1"}},
			wantHeaders: []string{"CHILD ID", "GROUP ID"},
			wantRows:    1,
		},
		{
			name:        "header only",
			input:       [][]string{{"A", "B"}},
			wantHeaders: []string{"A", "B"},
			wantRows:    0,
		},
		{
			name:     "no rows at all",
			input:    nil,
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := FromRows(tt.input)
			if len(tbl.Headers) != len(tt.wantHeaders) {
				t.Fatalf("headers = %v, want %v", tbl.Headers, tt.wantHeaders)
			}
			for i, h := range tt.wantHeaders {
				if tbl.Headers[i] != h {
					t.Errorf("header[%d] = %q, want %q", i, tbl.Headers[i], h)
				}
			}
			if tbl.RowCount() != tt.wantRows {
				t.Errorf("row count = %d, want %d", tbl.RowCount(), tt.wantRows)
			}
		})
	}
}

func TestFromRows_PadsRaggedRows(t *testing.T) {
	tbl := FromRows([][]string{
		{"A", "B", "C"},
		{"1"},
		{"2", "3", "4", "extra"},
	})

	if got := tbl.Cell(0, "C"); got != "" {
		t.Errorf("short row cell = %q, want empty", got)
	}
	if got := tbl.Cell(1, "C"); got != "4" {
		t.Errorf("cell = %q, want %q", got, "4")
	}
	if len(tbl.Rows[1]) != 3 {
		t.Errorf("long row truncated to header width, len = %d, want 3", len(tbl.Rows[1]))
	}
}

func TestMissingColumns(t *testing.T) {
	tbl := FromRows([][]string{{"CHILD ID", "VISIT DATE", "TMO Name"}})

	missing := tbl.MissingColumns([]string{"CHILD ID", "GROUP ID", "YM Name"})
	if len(missing) != 2 {
		t.Fatalf("missing = %v, want 2 entries", missing)
	}
	if missing[0] != "GROUP ID" || missing[1] != "YM Name" {
		t.Errorf("missing = %v, want [GROUP ID, YM Name]", missing)
	}

	if missing := tbl.MissingColumns([]string{"CHILD ID"}); missing != nil {
		t.Errorf("missing = %v, want nil", missing)
	}
}

func TestCell_OutOfRange(t *testing.T) {
	tbl := FromRows([][]string{{"A"}, {"x"}})

	if got := tbl.Cell(-1, "A"); got != "" {
		t.Errorf("negative row = %q, want empty", got)
	}
	if got := tbl.Cell(5, "A"); got != "" {
		t.Errorf("row past end = %q, want empty", got)
	}
	if got := tbl.Cell(0, "NOPE"); got != "" {
		t.Errorf("unknown column = %q, want empty", got)
	}
}
