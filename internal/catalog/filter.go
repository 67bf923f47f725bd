package catalog

import "strings"

// Filter narrows a product list by free-text search, category membership and
// an inclusive price range. The zero value of Search and Categories means
// pass-through; the price bounds always apply, so callers wanting no price
// constraint set MinPrice=0 and MaxPrice to a sufficiently large value
// (UnboundedPrice is a convenient upper bound).
type Filter struct {
	Search     string
	Categories []string
	MinPrice   float64
	MaxPrice   float64
}

// UnboundedPrice is an upper price bound that passes every catalog price.
const UnboundedPrice = 1e15

// NewFilter returns a pass-through filter.
func NewFilter() Filter {
	return Filter{MaxPrice: UnboundedPrice}
}

// Apply returns the products matching every active predicate.
// Predicates AND together:
//   - non-empty Search: case-insensitive substring over title, description,
//     or any tag (a product passes if any of the three match)
//   - non-empty Categories: exact, case-sensitive membership
//   - always: PriceValue(price) within [MinPrice, MaxPrice] inclusive
//
// Input order is preserved; the input slice is never mutated.
func (f Filter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) matches(p Product) bool {
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
		return false
	}
	price := PriceValue(p.Price)
	return price >= f.MinPrice && price <= f.MaxPrice
}

func matchesSearch(p Product, search string) bool {
	term := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
