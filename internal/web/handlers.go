package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mechvault/catalog/internal/catalog"
)

// handleHealth reports liveness. It does not probe the sheet backend; the
// service degrades rather than dies when the source is unreachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProducts serves the storefront catalog. The query string selects the
// shape of the response:
//
//	?id=<id>                 single product, 404 when absent
//	?featured=true&limit=<n> featured products
//	?related=<id>&limit=<n>  products related to a reference product
//	(otherwise)              full active list, optionally filtered by
//	                         search, category (repeatable), min_price, max_price
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if id := q.Get("id"); id != "" {
		s.handleProductByID(w, r, id)
		return
	}

	if strings.EqualFold(q.Get("featured"), "true") {
		products, err := s.catalog.Featured(r.Context(), parseLimit(q.Get("limit")))
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		writeJSON(w, r, http.StatusOK, products)
		return
	}

	if refID := q.Get("related"); refID != "" {
		s.handleRelated(w, r, refID, parseLimit(q.Get("limit")))
		return
	}

	products, err := s.catalog.Products(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	filter := filterFromQuery(q.Get("search"), q["category"], q.Get("min_price"), q.Get("max_price"))
	writeJSON(w, r, http.StatusOK, filter.Apply(products))
}

func (s *Server) handleProductByID(w http.ResponseWriter, r *http.Request, id string) {
	product, err := s.catalog.ProductByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if product == nil {
		s.respondError(w, r, catalog.ErrNotFound, http.StatusNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, product)
}

// handleRelated resolves the reference product first, then lists active
// products sharing its category. An unknown reference yields an empty list,
// matching the detail page's behavior of simply showing no suggestions.
func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request, refID string, limit int) {
	ref, err := s.catalog.ProductByID(r.Context(), refID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if ref == nil {
		writeJSON(w, r, http.StatusOK, []catalog.Product{})
		return
	}

	related, err := s.catalog.Related(r.Context(), ref.Category, ref.ID, limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, related)
}

// handleCategories lists the distinct categories of active products.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, categories)
}

// filterFromQuery builds a product filter from query parameters. Absent or
// unparsable price bounds leave the filter open on that side.
func filterFromQuery(search string, categories []string, minPrice, maxPrice string) catalog.Filter {
	f := catalog.NewFilter()
	f.Search = search

	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			f.Categories = append(f.Categories, c)
		}
	}

	if v, err := strconv.ParseFloat(minPrice, 64); err == nil && v >= 0 {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(maxPrice, 64); err == nil && v >= 0 {
		f.MaxPrice = v
	}
	return f
}

// parseLimit parses a limit query value; anything non-positive or unparsable
// falls through to the caller's default.
func parseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
