package catalog

// mapper.go normalizes raw sheet row values into typed products.
//
// These functions handle the messy reality of hand-edited spreadsheet data:
//   - comma-separated lists with stray whitespace and empty segments
//   - boolean flags typed as "TRUE", "true" or "1"
//   - prices carrying currency prefixes ("Rp 99.000")
//
// Malformed optional fields never produce errors; only a missing id or title
// causes a row to be rejected.

import (
	"strconv"
	"strings"
)

// DefaultCategory is assigned to rows with an empty category column.
const DefaultCategory = "Uncategorized"

// MapRow converts one raw sheet row into a Product.
// Returns ok=false when the row lacks an id or title; such rows are dropped
// silently by the accessor.
//
// An empty is_active column defaults to active. The accessor additionally
// filters on IsActive, so the default only shows through in admin views that
// list inactive rows.
func MapRow(row SheetRow) (Product, bool) {
	if row.ID == "" || row.Title == "" {
		return Product{}, false
	}

	active := true
	if row.IsActive != "" {
		active = ParseActiveFlag(row.IsActive)
	}

	p := Product{
		ID:            row.ID,
		Title:         row.Title,
		Category:      row.Category,
		Price:         row.Price,
		OriginalPrice: row.OriginalPrice,
		Description:   row.Description,
		Images:        ParseList(row.Images),
		Tags:          ParseList(row.Tags),
		LinkShopee:    row.LinkShopee,
		LinkWhatsApp:  row.LinkWhatsApp,
		Badge:         row.Badge,
		IsActive:      active,
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.Price == "" {
		p.Price = "0"
	}
	return p, true
}

// ParseList splits a comma-separated cell into its segments.
// Segments are trimmed, empty segments are dropped, order is preserved and
// duplicates are allowed. The result is never nil.
func ParseList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseActiveFlag interprets a raw is_active cell.
// "TRUE" (any case) and the literal "1" mean active; everything else,
// including the empty string, means inactive.
func ParseActiveFlag(s string) bool {
	return strings.ToUpper(s) == "TRUE" || s == "1"
}

// PriceValue parses a display price string into a number for comparisons.
// All characters other than digits and dots are stripped before parsing;
// unparseable values come back as 0. The stored Product.Price is never
// rewritten, this is purely a consumer-side view.
func PriceValue(s string) float64 {
	if s == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
