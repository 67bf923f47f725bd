package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Default truncation limits for the derived listings.
const (
	DefaultFeaturedLimit = 8
	DefaultRelatedLimit  = 3
)

// RowSource supplies the full raw row set from the external spreadsheet.
// Implementations re-read the source on every call; the service adds no
// staleness tracking of its own.
type RowSource interface {
	Rows(ctx context.Context) ([]SheetRow, error)
}

// Snapshot is an optional time-bounded cache holding the active product list.
// Implementations are best-effort: a failed Get is a miss and a failed Set is
// ignored. Correctness never depends on the snapshot.
type Snapshot interface {
	Get(ctx context.Context) ([]Product, bool)
	Set(ctx context.Context, products []Product)
}

// Options configures a Service.
type Options struct {
	// Snapshot, when non-nil, serves Products from a cached snapshot and
	// repopulates it after source fetches.
	Snapshot Snapshot

	// Strict makes the derived queries (ProductByID, Categories, Featured,
	// Related) propagate source errors instead of degrading to empty
	// results. Off by default, matching the storefront's original behavior
	// of showing an empty state when the sheet is unreachable.
	Strict bool
}

// Service is the catalog accessor: stateless read-through queries over a
// RowSource. Every query maps the full row set, drops rows the mapper
// rejects, and keeps only active products in sheet order.
type Service struct {
	source RowSource
	snap   Snapshot
	strict bool
}

// NewService creates a catalog service reading from source.
func NewService(source RowSource, opts Options) *Service {
	return &Service{
		source: source,
		snap:   opts.Snapshot,
		strict: opts.Strict,
	}
}

// Products returns every active product in the sheet's row order.
// Source failures propagate to the caller; this is the only query that
// surfaces them unconditionally.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	if s.snap != nil {
		if products, ok := s.snap.Get(ctx); ok {
			return products, nil
		}
	}

	rows, err := s.source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet rows: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		p, ok := MapRow(row)
		if !ok {
			continue
		}
		if p.IsActive {
			products = append(products, p)
		}
	}

	if s.snap != nil {
		s.snap.Set(ctx, products)
	}
	return products, nil
}

// ProductByID returns the active product with the given id, or nil when no
// such product exists. Absence is a normal result, not an error.
func (s *Service) ProductByID(ctx context.Context, id string) (*Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		if s.strict {
			return nil, err
		}
		slog.Error("catalog: product lookup degraded to not-found", "id", id, "error", err)
		return nil, nil
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

// Categories returns the distinct category values across active products,
// sorted ascending. Category defaults in the mapper guarantee the result
// never contains an empty string.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.Products(ctx)
	if err != nil {
		if s.strict {
			return nil, err
		}
		slog.Error("catalog: categories degraded to empty", "error", err)
		return []string{}, nil
	}

	seen := make(map[string]struct{}, len(products))
	categories := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Featured returns active products carrying a badge, in source order,
// truncated to limit. A non-positive limit falls back to
// DefaultFeaturedLimit. There is no ranking beyond "has a badge".
func (s *Service) Featured(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	products, err := s.Products(ctx)
	if err != nil {
		if s.strict {
			return nil, err
		}
		slog.Error("catalog: featured degraded to empty", "error", err)
		return []Product{}, nil
	}

	featured := []Product{}
	for _, p := range products {
		if p.Featured() {
			featured = append(featured, p)
			if len(featured) == limit {
				break
			}
		}
	}
	return featured, nil
}

// Related returns active products sharing category with a reference product,
// excluding the reference product itself, in source order, truncated to
// limit. A non-positive limit falls back to DefaultRelatedLimit.
func (s *Service) Related(ctx context.Context, category, currentID string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	products, err := s.Products(ctx)
	if err != nil {
		if s.strict {
			return nil, err
		}
		slog.Error("catalog: related degraded to empty", "id", currentID, "error", err)
		return []Product{}, nil
	}

	related := []Product{}
	for _, p := range products {
		if p.Category == category && p.ID != currentID {
			related = append(related, p)
			if len(related) == limit {
				break
			}
		}
	}
	return related, nil
}
