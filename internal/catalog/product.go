// Package catalog provides the product catalog business logic: mapping raw
// spreadsheet rows into typed products, the read-through accessor queries,
// and the search/category/price filter pipeline.
// This package has no HTTP dependencies and can be used by any frontend.
package catalog

// SheetRow is one record from the spreadsheet with all fields as raw strings.
// Field names match the sheet's header columns.
type SheetRow struct {
	ID            string
	Title         string
	Category      string
	Price         string
	OriginalPrice string
	Description   string
	Images        string
	Tags          string
	LinkShopee    string
	LinkWhatsApp  string
	Badge         string
	IsActive      string
}

// Product is the sole domain entity: a read-only projection of a sheet row.
//
// Price and OriginalPrice are kept as the pre-formatted display strings the
// sheet holds (e.g. "99000" or "Rp 99K"); use PriceValue to compare them
// numerically. Images and Tags are never nil.
type Product struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"original_price,omitempty"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	LinkShopee    string   `json:"link_shopee,omitempty"`
	LinkWhatsApp  string   `json:"link_whatsapp,omitempty"`
	Badge         string   `json:"badge,omitempty"`
	IsActive      bool     `json:"is_active"`
}

// Featured reports whether the product carries a badge and should appear in
// featured listings.
func (p Product) Featured() bool {
	return p.Badge != ""
}

// Discounted reports whether the product has an original price differing from
// the current price.
func (p Product) Discounted() bool {
	return p.OriginalPrice != "" && p.OriginalPrice != p.Price
}
