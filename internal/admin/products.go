// Package admin provides the back-office repositories.
//
// All state is held in memory behind explicit repository interfaces: the
// product store is seeded from the catalog at startup and mutations touch
// memory only (writes never reach the spreadsheet), while orders and
// customers are seeded demo data. The stores are safe for concurrent use by
// HTTP handlers.
package admin

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mechvault/catalog/internal/catalog"
)

// Record-status filter values shared by the admin list queries.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	ErrProductNotFound = errors.New("admin: product not found")
	ErrOrderNotFound   = errors.New("admin: order not found")
)

// ProductQuery filters the admin product listing.
// Zero values pass through.
type ProductQuery struct {
	Search   string // matches title or id, case-insensitive
	Category string // exact match
	Status   string // StatusAll, StatusActive or StatusInactive
}

// ProductStore is the in-memory product repository behind the admin screens.
// Unlike the public catalog it also lists inactive products.
type ProductStore struct {
	mu       sync.RWMutex
	products []catalog.Product
}

// NewProductStore creates a store seeded with the given products.
func NewProductStore(seed []catalog.Product) *ProductStore {
	s := &ProductStore{products: make([]catalog.Product, len(seed))}
	copy(s.products, seed)
	return s
}

// List returns the products matching the query, in insertion order.
func (s *ProductStore) List(q ProductQuery) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []catalog.Product{}
	term := strings.ToLower(q.Search)
	for _, p := range s.products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.ID), term) {
			continue
		}
		if q.Category != "" && q.Category != StatusAll && p.Category != q.Category {
			continue
		}
		if q.Status == StatusActive && !p.IsActive {
			continue
		}
		if q.Status == StatusInactive && p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Get returns the product with the given id.
func (s *ProductStore) Get(id string) (catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, ErrProductNotFound
}

// Create adds a product. An empty id gets a generated PROD- id; empty
// category and price get the catalog defaults; Images and Tags are
// normalized to non-nil.
func (s *ProductStore) Create(p catalog.Product) catalog.Product {
	if p.ID == "" {
		p.ID = newProductID()
	}
	normalize(&p)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	return p
}

// Update replaces the stored product with the given id.
func (s *ProductStore) Update(id string, p catalog.Product) (catalog.Product, error) {
	p.ID = id
	normalize(&p)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = p
			return p, nil
		}
	}
	return catalog.Product{}, ErrProductNotFound
}

// Delete removes the product with the given id.
func (s *ProductStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// ToggleActive flips a product's active flag and returns the updated record.
func (s *ProductStore) ToggleActive(id string) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].IsActive = !s.products[i].IsActive
			return s.products[i], nil
		}
	}
	return catalog.Product{}, ErrProductNotFound
}

// Count returns total, active and inactive product counts for the dashboard
// stat cards.
func (s *ProductStore) Count() (total, active, inactive int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total = len(s.products)
	for _, p := range s.products {
		if p.IsActive {
			active++
		}
	}
	return total, active, total - active
}

func normalize(p *catalog.Product) {
	if p.Category == "" {
		p.Category = catalog.DefaultCategory
	}
	if p.Price == "" {
		p.Price = "0"
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

func newProductID() string {
	return "PROD-" + strings.ToUpper(uuid.NewString()[:8])
}
