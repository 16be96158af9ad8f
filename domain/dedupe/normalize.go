package dedupe

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeString applies deterministic string normalization: control
// characters removed, internal whitespace collapsed, trimmed, lower-cased.
func normalizeString(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// normalizeChildID strips the trailing ".0" that float-formatted ID cells
// pick up in spreadsheets, then normalizes as a string.
func normalizeChildID(s string) string {
	s = normalizeString(s)
	return strings.TrimSuffix(s, ".0")
}

// canonicalDateLayout is the date-only form every parseable date collapses to
const canonicalDateLayout = "2006-01-02"

// Day-first layouts first: the source data writes visit dates as DD/MM/YYYY.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2/1/2006",
	"2-1-2006",
	"2006-01-02",
	"2006/01/02",
	"02-Jan-2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"January 2, 2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// normalizeDate parses a visit-date cell to canonical YYYY-MM-DD, dropping
// any time component. Returns ok=false when no known representation matches.
func normalizeDate(s string) (string, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(canonicalDateLayout), true
		}
	}

	// Unformatted spreadsheet cells can surface dates as serial numbers
	// (days since 1899-12-30).
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial >= 1 && serial < 300000 {
			epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
			t := epoch.AddDate(0, 0, int(serial))
			return t.Format(canonicalDateLayout), true
		}
	}

	return "", false
}
