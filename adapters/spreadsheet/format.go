package spreadsheet

import (
	"path/filepath"
	"strings"

	"visitdedupe/domain/core"
)

// Format is the tabular file format of an upload
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat maps a filename extension to a Format. Macro-enabled
// workbooks (.xlsm) read the same as .xlsx.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", core.NewUnsupportedFormatError(ext)
	}
}

// OutputExt returns the extension output files carry for this format.
// Workbook inputs always produce plain .xlsx outputs.
func (f Format) OutputExt() string {
	if f == FormatCSV {
		return ".csv"
	}
	return ".xlsx"
}

// ContentType returns the MIME type for download responses
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
