package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"visitdedupe/domain/core"
	"visitdedupe/domain/table"
)

// Reader parses uploaded spreadsheet bytes into a table
type Reader struct {
	format Format
}

// NewReader creates a reader for the given format
func NewReader(format Format) *Reader {
	return &Reader{format: format}
}

// ReadTable parses the upload into a Table. A header row is required; a file
// with a header and zero data rows is a valid, empty table.
func (r *Reader) ReadTable(src io.Reader) (table.Table, error) {
	switch r.format {
	case FormatCSV:
		return r.readCSV(src)
	case FormatXLSX:
		return r.readXLSX(src)
	default:
		return table.Table{}, core.NewUnsupportedFormatError(string(r.format))
	}
}

// readXLSX reads the first sheet of a workbook
func (r *Reader) readXLSX(src io.Reader) (table.Table, error) {
	start := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.Table{}, core.ErrNoHeaderRow
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return table.Table{}, core.ErrNoHeaderRow
	}

	t := table.FromRows(rows)
	log.Printf("[Reader] Workbook sheet %q read in %.2fms (%d columns, %d rows)",
		sheets[0], float64(time.Since(start).Nanoseconds())/1e6, len(t.Headers), t.RowCount())
	return t, nil
}

// readCSV reads a comma-separated stream
func (r *Reader) readCSV(src io.Reader) (table.Table, error) {
	start := time.Now()
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // ragged rows are padded by the table layer

	rows, err := reader.ReadAll()
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return table.Table{}, core.ErrNoHeaderRow
	}

	t := table.FromRows(rows)
	log.Printf("[Reader] CSV read in %.2fms (%d columns, %d rows)",
		float64(time.Since(start).Nanoseconds())/1e6, len(t.Headers), t.RowCount())
	return t, nil
}

// ReadTableBytes is a convenience wrapper over ReadTable for in-memory data
func (r *Reader) ReadTableBytes(data []byte) (table.Table, error) {
	return r.ReadTable(bytes.NewReader(data))
}
