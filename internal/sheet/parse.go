// Package sheet reads the product spreadsheet through its CSV export
// endpoint and turns it into raw catalog rows.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mechvault/catalog/internal/catalog"
)

// Sheet column headers, matched case-insensitively after cell cleanup.
const (
	colID            = "id"
	colTitle         = "title"
	colCategory      = "category"
	colPrice         = "price"
	colOriginalPrice = "original_price"
	colDescription   = "description"
	colImages        = "images"
	colTags          = "tags"
	colLinkShopee    = "link_shopee"
	colLinkWhatsApp  = "link_whatsapp"
	colBadge         = "badge"
	colIsActive      = "is_active"
)

// headerIndex maps cleaned, lowercased column names to their position.
type headerIndex map[string]int

// Parse reads a CSV export of the product sheet and returns its data rows.
// The header row is located by looking for the id and title columns, so
// banner rows above the real header are tolerated. Fully empty rows are
// skipped; all other rows come back in sheet order, unvalidated — mapping
// and rejection is the catalog mapper's job.
func Parse(r io.Reader) ([]catalog.SheetRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse sheet csv: %w", err)
	}

	headerPos := findHeaderRow(records)
	if headerPos < 0 {
		return nil, fmt.Errorf("parse sheet: no header row with %q and %q columns", colID, colTitle)
	}

	idx := makeHeaderIndex(records[headerPos])
	rows := make([]catalog.SheetRow, 0, len(records)-headerPos-1)
	for _, record := range records[headerPos+1:] {
		if emptyRecord(record) {
			continue
		}
		rows = append(rows, catalog.SheetRow{
			ID:            cell(record, idx, colID),
			Title:         cell(record, idx, colTitle),
			Category:      cell(record, idx, colCategory),
			Price:         cell(record, idx, colPrice),
			OriginalPrice: cell(record, idx, colOriginalPrice),
			Description:   cell(record, idx, colDescription),
			Images:        cell(record, idx, colImages),
			Tags:          cell(record, idx, colTags),
			LinkShopee:    cell(record, idx, colLinkShopee),
			LinkWhatsApp:  cell(record, idx, colLinkWhatsApp),
			Badge:         cell(record, idx, colBadge),
			IsActive:      cell(record, idx, colIsActive),
		})
	}
	return rows, nil
}

// findHeaderRow returns the index of the first row containing both the id
// and title columns, or -1 when no such row exists.
func findHeaderRow(records [][]string) int {
	for i, record := range records {
		idx := makeHeaderIndex(record)
		if _, okID := idx[colID]; !okID {
			continue
		}
		if _, okTitle := idx[colTitle]; okTitle {
			return i
		}
	}
	return -1
}

// makeHeaderIndex builds a headerIndex from a header row.
// Keys are cleaned and lowercased for case-insensitive matching.
func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if key != "" {
			idx[key] = i
		}
	}
	return idx
}

// cell returns the cleaned value of the named column, or "" when the column
// is absent or the row is short.
func cell(record []string, idx headerIndex, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(record) {
		return ""
	}
	return CleanCell(record[pos])
}

// emptyRecord reports whether every cell in the record is blank.
func emptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// CleanCell removes common spreadsheet-export artifacts from a cell value:
// whitespace, a UTF-8 BOM, Excel formula prefixes (="value") and stray
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}
