package spreadsheet

import (
	"errors"
	"testing"

	"visitdedupe/domain/core"
	"visitdedupe/domain/table"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"visits.xlsx", FormatXLSX, false},
		{"visits.XLSM", FormatXLSX, false},
		{"visits.csv", FormatCSV, false},
		{"visits.txt", "", true},
		{"visits", "", true},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.filename)
		if tt.wantErr {
			if !errors.Is(err, core.ErrUnsupportedFormat) {
				t.Errorf("DetectFormat(%q) error = %v, want ErrUnsupportedFormat", tt.filename, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DetectFormat(%q) unexpected error: %v", tt.filename, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func sampleTable() table.Table {
	tbl := table.New([]string{"CHILD ID", "TMO Name"})
	tbl.Append([]string{"1", "Asha"})
	tbl.Append([]string{"2", "Mira"})
	return tbl
}

func TestXLSXRoundTrip(t *testing.T) {
	data, err := WriteXLSX([]Sheet{{Name: "Deduped", Table: sampleTable()}})
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	got, err := NewReader(FormatXLSX).ReadTableBytes(data)
	if err != nil {
		t.Fatalf("ReadTableBytes: %v", err)
	}
	if got.RowCount() != 2 {
		t.Fatalf("rows = %d, want 2", got.RowCount())
	}
	if got.Cell(1, "TMO Name") != "Mira" {
		t.Errorf("cell = %q, want Mira", got.Cell(1, "TMO Name"))
	}
}

func TestXLSXMultipleSheets(t *testing.T) {
	empty := table.New([]string{"CHILD ID", "TMO Name"})
	data, err := WriteXLSX([]Sheet{
		{Name: "Deduped", Table: sampleTable()},
		{Name: "Duplicates_Only", Table: empty},
	})
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	// The reader consumes the first sheet, which must be "Deduped"
	got, err := NewReader(FormatXLSX).ReadTableBytes(data)
	if err != nil {
		t.Fatalf("ReadTableBytes: %v", err)
	}
	if got.RowCount() != 2 {
		t.Errorf("first sheet rows = %d, want 2", got.RowCount())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	data, err := WriteCSV(sampleTable())
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := NewReader(FormatCSV).ReadTableBytes(data)
	if err != nil {
		t.Fatalf("ReadTableBytes: %v", err)
	}
	if got.RowCount() != 2 || got.Cell(0, "CHILD ID") != "1" {
		t.Errorf("unexpected table: %+v", got)
	}
}

func TestReadCSV_HeaderOnlyIsValidEmptyTable(t *testing.T) {
	got, err := NewReader(FormatCSV).ReadTableBytes([]byte("CHILD ID,TMO Name\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsEmpty() || len(got.Headers) != 2 {
		t.Errorf("want empty table with 2 headers, got %+v", got)
	}
}

func TestReadCSV_NoContent(t *testing.T) {
	_, err := NewReader(FormatCSV).ReadTableBytes(nil)
	if !errors.Is(err, core.ErrNoHeaderRow) {
		t.Errorf("error = %v, want ErrNoHeaderRow", err)
	}
}
