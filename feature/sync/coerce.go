package sync

// Cell coercion helpers. These are total: malformed spreadsheet data always
// degrades to a default instead of aborting the run.

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{"2006-01-02", "2006/01/02"}

// Raw cell access loses the cell type, so a bare number in a date column may
// be either a date serial or numeric text. Serials converting outside this
// year window are treated as text and therefore absent.
const (
	minSerialYear = 1950
	maxSerialYear = 2149
)

// ToText trims the raw cell value and returns nil when nothing remains.
// An empty cell is absent, never the empty string.
func ToText(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

// TextOr trims the raw cell value, substituting fallback when it is blank.
func TextOr(raw, fallback string) string {
	if s := ToText(raw); s != nil {
		return *s
	}
	return fallback
}

// ToFloat parses the raw cell value as a number, returning def on any
// failure. Thousands separators are tolerated since formatted cells carry
// them through.
func ToFloat(raw string, def float64) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// ToInt parses the raw cell value as an integer, returning nil on any
// failure. Excel stores numerics as floats, so "12.0" still yields 12.
func ToInt(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	if float64(n) != f {
		return nil
	}
	return &n
}

// ToDate interprets the raw cell value as a calendar date. Serial numbers
// (how the workbook stores native dates) are narrowed to their date
// component; text values are tried against the accepted layouts using only
// the first 10 characters. Anything else is absent.
func ToDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil || t.Year() < minSerialYear || t.Year() > maxSerialYear {
			return nil
		}
		d := DateOnly(t)
		return &d
	}

	if len(s) > 10 {
		s = s[:10]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := DateOnly(t)
			return &d
		}
	}
	return nil
}

// DateOnly truncates a timestamp to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
