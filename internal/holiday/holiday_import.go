package holiday

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	holidayerrors "github.com/Thomas-Sunil/newhrms/internal/holiday/errors"

	"github.com/xuri/excelize/v2"
)

// ImportRow is one parsed line of a holiday workbook.
type ImportRow struct {
	Row    int
	Date   time.Time
	Reason string
}

var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"01-02-06",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseWorkbook reads the first sheet of an XLSX file. The header row must
// contain "date" and "reason" (case-insensitive, any order). Rows that cannot
// be parsed are reported and skipped.
func ParseWorkbook(r io.Reader) ([]ImportRow, []RowError, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, holidayerrors.ErrInvalidWorkbook.WithCause(err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, holidayerrors.ErrInvalidWorkbook
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, nil, holidayerrors.ErrInvalidWorkbook.WithCause(err)
	}
	if len(rows) == 0 {
		return nil, nil, holidayerrors.ErrMissingColumns
	}

	dateIdx, reasonIdx := -1, -1
	for i, h := range rows[0] {
		switch normalizeHeader(h) {
		case "date":
			dateIdx = i
		case "reason", "holiday", "name":
			if reasonIdx < 0 {
				reasonIdx = i
			}
		}
	}
	if dateIdx < 0 || reasonIdx < 0 {
		return nil, nil, holidayerrors.ErrMissingColumns
	}

	var (
		parsed  []ImportRow
		errs    []RowError
		seenDay = make(map[string]int)
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		rawDate := cellValue(row, dateIdx)
		reason := cellValue(row, reasonIdx)
		if rawDate == "" && reason == "" {
			continue
		}

		date, ok := parseDate(rawDate)
		if !ok {
			errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("unrecognised date %q", rawDate)})
			continue
		}
		if reason == "" {
			errs = append(errs, RowError{Row: rowNum, Message: "reason is required"})
			continue
		}
		key := date.Format("2006-01-02")
		if first, dup := seenDay[key]; dup {
			errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("duplicate of row %d", first)})
			continue
		}
		seenDay[key] = rowNum

		parsed = append(parsed, ImportRow{Row: rowNum, Date: date, Reason: reason})
	}

	return parsed, errs, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	// Unformatted date cells come back as the Excel serial number.
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial >= 20000 && serial <= 80000 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return civil(t), true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return civil(t), true
		}
	}
	return time.Time{}, false
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
