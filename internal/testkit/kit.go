// Package testkit provides fixtures for exercising the dedupe pipeline in
// tests: in-memory visit tables and serialized spreadsheet uploads.
package testkit

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"visitdedupe/adapters/spreadsheet"
	"visitdedupe/domain/dedupe"
	"visitdedupe/domain/table"
)

// Visit is one house-visit fixture row
type Visit struct {
	ChildID        string
	HouseVisitDate string
	VisitDate      string
	GroupID        string
	TMOName        string
	YMName         string
	Notes          string
}

// VisitHeaders is the fixture schema: the six key columns plus a carried
// pass-through column.
var VisitHeaders = append(append([]string{}, dedupe.DefaultKeyColumns...), "NOTES")

// VisitTable builds an in-memory table from visit fixtures
func VisitTable(visits ...Visit) table.Table {
	t := table.New(VisitHeaders)
	for _, v := range visits {
		t.Append([]string{v.ChildID, v.HouseVisitDate, v.VisitDate, v.GroupID, v.TMOName, v.YMName, v.Notes})
	}
	return t
}

// SampleVisits returns a small dataset with one exact duplicate pair and one
// normalization-only duplicate pair.
func SampleVisits() []Visit {
	return []Visit{
		{ChildID: "101", HouseVisitDate: "05/03/2024", VisitDate: "05/03/2024", GroupID: "G1", TMOName: "Asha", YMName: "Ravi", Notes: "r0"},
		{ChildID: "102", HouseVisitDate: "05/03/2024", VisitDate: "05/03/2024", GroupID: "G1", TMOName: "Mira", YMName: "Ravi", Notes: "r1"},
		{ChildID: "101", HouseVisitDate: "05/03/2024", VisitDate: "05/03/2024", GroupID: "G1", TMOName: "Asha", YMName: "Ravi", Notes: "r2"},
		{ChildID: "102", HouseVisitDate: "2024-03-05", VisitDate: "2024-03-05", GroupID: "G1", TMOName: " mira ", YMName: "RAVI", Notes: "r3"},
		{ChildID: "103", HouseVisitDate: "06/03/2024", VisitDate: "06/03/2024", GroupID: "G2", TMOName: "Asha", YMName: "Ravi", Notes: "r4"},
	}
}

// XLSXUpload serializes visits to workbook bytes the way a browser upload
// arrives
func XLSXUpload(visits ...Visit) ([]byte, error) {
	return spreadsheet.WriteXLSX([]spreadsheet.Sheet{{Name: "Sheet1", Table: VisitTable(visits...)}})
}

// CSVUpload serializes visits to CSV bytes
func CSVUpload(visits ...Visit) ([]byte, error) {
	return spreadsheet.WriteCSV(VisitTable(visits...))
}

// MultipartUpload builds a multipart/form-data body carrying the file under
// the "dataset" field, returning the body and its content type.
func MultipartUpload(filename string, data []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("dataset", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
