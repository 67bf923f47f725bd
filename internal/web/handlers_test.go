package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mechvault/catalog/internal/admin"
	"github.com/mechvault/catalog/internal/catalog"
	"github.com/mechvault/catalog/internal/config"
)

type stubSource struct {
	rows []catalog.SheetRow
	err  error
}

func (s *stubSource) Rows(ctx context.Context) ([]catalog.SheetRow, error) {
	return s.rows, s.err
}

var storefrontRows = []catalog.SheetRow{
	{ID: "P1", Title: "Gear Housing", Category: "CAD Library", Price: "100", Badge: "Featured", Tags: "gear,housing", IsActive: "TRUE"},
	{ID: "P2", Title: "Bolt Set", Category: "Mechanical Parts", Price: "500", Description: "M8 bolts", IsActive: "TRUE"},
	{ID: "P3", Title: "Bracket", Category: "Mechanical Parts", Price: "300", Badge: "New", IsActive: "TRUE"},
	{ID: "P4", Title: "Hidden", Category: "Mechanical Parts", Price: "50", IsActive: "FALSE"},
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Logging.Level = "error"
	// rate limiting off so tests never trip the bucket
	cfg.Rate.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, source catalog.RowSource, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	svc := catalog.NewService(source, catalog.Options{})
	products, _ := svc.Products(context.Background())

	return NewServer(cfg, svc,
		admin.NewProductStore(products),
		admin.NewOrderStore(),
		admin.NewCustomerStore(),
	)
}

func doRequest(t *testing.T, s *Server, method, target string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == nil {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeProducts(t *testing.T, rec *httptest.ResponseRecorder) []catalog.Product {
	t.Helper()
	var products []catalog.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decode products: %v (body %q)", err, rec.Body.String())
	}
	return products
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q, want status ok", rec.Body.String())
	}
}

func TestProducts_List(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/products", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	products := decodeProducts(t, rec)
	if len(products) != 3 {
		t.Fatalf("len = %d, want 3 (inactive excluded)", len(products))
	}
	if products[0].ID != "P1" || products[1].ID != "P2" || products[2].ID != "P3" {
		t.Errorf("order = %v, want sheet order P1,P2,P3", products)
	}
}

func TestProducts_Filtered(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"search by tag", "/api/products?search=gear", []string{"P1"}},
		{"search by title", "/api/products?search=bolt", []string{"P2"}},
		{"category", "/api/products?category=Mechanical+Parts", []string{"P2", "P3"}},
		{"two categories", "/api/products?category=CAD+Library&category=Mechanical+Parts", []string{"P1", "P2", "P3"}},
		{"price range", "/api/products?min_price=200&max_price=400", []string{"P3"}},
		{"price inclusive bounds", "/api/products?min_price=100&max_price=300", []string{"P1", "P3"}},
		{"combined no match", "/api/products?search=gear&category=Mechanical+Parts&min_price=400", []string{}},
		{"unparsable prices ignored", "/api/products?min_price=abc&max_price=", []string{"P1", "P2", "P3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, tt.target, nil, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			products := decodeProducts(t, rec)
			if len(products) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(products), len(tt.want), products)
			}
			for i, id := range tt.want {
				if products[i].ID != id {
					t.Errorf("products[%d].ID = %q, want %q", i, products[i].ID, id)
				}
			}
		})
	}
}

func TestProducts_ByID(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/products?id=P2", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var p catalog.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if p.ID != "P2" || p.Title != "Bolt Set" {
		t.Errorf("product = %+v, want P2 Bolt Set", p)
	}
}

func TestProducts_ByID_NotFound(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	for _, id := range []string{"missing", "P4"} { // P4 is inactive
		rec := doRequest(t, s, http.MethodGet, "/api/products?id="+id, nil, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("id=%s status = %d, want 404", id, rec.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if resp.Error != "Product not found" {
			t.Errorf("error = %q, want %q", resp.Error, "Product not found")
		}
	}
}

func TestProducts_Featured(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/products?featured=true", nil, nil)
	products := decodeProducts(t, rec)
	if len(products) != 2 || products[0].ID != "P1" || products[1].ID != "P3" {
		t.Fatalf("featured = %v, want P1,P3", products)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/products?featured=true&limit=1", nil, nil)
	products = decodeProducts(t, rec)
	if len(products) != 1 || products[0].ID != "P1" {
		t.Fatalf("featured limit=1 = %v, want P1", products)
	}
}

func TestProducts_Related(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/products?related=P2", nil, nil)
	products := decodeProducts(t, rec)
	if len(products) != 1 || products[0].ID != "P3" {
		t.Fatalf("related(P2) = %v, want P3", products)
	}

	// Unknown reference answers an empty list, not an error.
	rec = doRequest(t, s, http.MethodGet, "/api/products?related=missing", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	products = decodeProducts(t, rec)
	if len(products) != 0 {
		t.Fatalf("related(missing) = %v, want empty", products)
	}
}

func TestProducts_SourceError(t *testing.T) {
	s := newTestServer(t, &stubSource{err: errors.New("fetch sheet: connection refused")})

	rec := doRequest(t, s, http.MethodGet, "/api/products", nil, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != "SRC001" {
		t.Errorf("code = %q, want SRC001", resp.Code)
	}
}

func TestCategories(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/categories", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var categories []string
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	want := []string{"CAD Library", "Mechanical Parts"}
	if len(categories) != len(want) || categories[0] != want[0] || categories[1] != want[1] {
		t.Errorf("categories = %v, want %v", categories, want)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows}, func(cfg *config.Config) {
		cfg.Security.EnableCSP = true
	})

	rec := doRequest(t, s, http.MethodGet, "/healthz", nil, nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("Content-Security-Policy missing with CSP enabled")
	}

	s = newTestServer(t, &stubSource{rows: storefrontRows})
	rec = doRequest(t, s, http.MethodGet, "/healthz", nil, nil)
	if got := rec.Header().Get("Content-Security-Policy"); got != "" {
		t.Errorf("Content-Security-Policy = %q, want unset with CSP disabled", got)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows}, func(cfg *config.Config) {
		cfg.Rate.Enabled = true
		cfg.Rate.RequestsPerMinute = 60
		cfg.Rate.Burst = 2
	})
	t.Cleanup(func() { s.Shutdown(context.Background()) })

	var last int
	for i := 0; i < 3; i++ {
		rec := doRequest(t, s, http.MethodGet, "/healthz", nil, nil)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last)
	}
}
