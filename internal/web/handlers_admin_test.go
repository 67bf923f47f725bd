package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/mechvault/catalog/internal/admin"
	"github.com/mechvault/catalog/internal/catalog"
	"github.com/mechvault/catalog/internal/config"
)

func withAPIKey(keys ...string) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.Security.RequireAPIKey = true
		cfg.Security.APIKeys = keys
	}
}

func TestAdmin_APIKeyGate(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows}, withAPIKey("secret"))

	rec := doRequest(t, s, http.MethodGet, "/api/admin/products", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key status = %d, want 401", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/admin/products", nil, map[string]string{"X-API-Key": "wrong"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong key status = %d, want 403", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/admin/products", nil, map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid key status = %d, want 200", rec.Code)
	}
}

func TestAdmin_APIKeyOptional(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/admin/products", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with auth disabled", rec.Code)
	}
}

func TestAdmin_ListProducts(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/admin/products", nil, nil)
	var resp adminProductsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Seeded from the public catalog, so only the 3 active products are present.
	if resp.Counts.Total != 3 || resp.Counts.Active != 3 {
		t.Errorf("counts = %+v, want total 3 active 3", resp.Counts)
	}
	if len(resp.Products) != 3 {
		t.Errorf("len = %d, want 3", len(resp.Products))
	}

	rec = doRequest(t, s, http.MethodGet, "/api/admin/products?search=bolt", nil, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Products) != 1 || resp.Products[0].ID != "P2" {
		t.Errorf("search=bolt = %v, want P2", resp.Products)
	}
}

func TestAdmin_ProductLifecycle(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	body := []byte(`{"title":"Shaft Coupling","category":"Mechanical Parts","price":"250"}`)
	rec := doRequest(t, s, http.MethodPost, "/api/admin/products", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var created catalog.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if !strings.HasPrefix(created.ID, "PROD-") {
		t.Errorf("created id = %q, want PROD- prefix", created.ID)
	}
	if !created.IsActive {
		t.Error("created product should default to active")
	}

	// Update
	body = []byte(`{"title":"Shaft Coupling v2","category":"Mechanical Parts","price":"275"}`)
	rec = doRequest(t, s, http.MethodPut, "/api/admin/products/"+created.ID, body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", rec.Code)
	}
	var updated catalog.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Title != "Shaft Coupling v2" || updated.ID != created.ID {
		t.Errorf("updated = %+v, want same id with new title", updated)
	}

	// Toggle off
	rec = doRequest(t, s, http.MethodPost, "/api/admin/products/"+created.ID+"/toggle", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, want 200", rec.Code)
	}
	var toggled catalog.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode toggled: %v", err)
	}
	if toggled.IsActive {
		t.Error("toggle should deactivate an active product")
	}

	// Delete
	rec = doRequest(t, s, http.MethodDelete, "/api/admin/products/"+created.ID, nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = doRequest(t, s, http.MethodDelete, "/api/admin/products/"+created.ID, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestAdmin_CreateProductValidation(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodPost, "/api/admin/products", []byte(`{not json`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/admin/products", []byte(`{"price":"100"}`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing title status = %d, want 400", rec.Code)
	}
}

func TestAdmin_Orders(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/admin/orders?status="+admin.OrderPending, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var orders []admin.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	for _, o := range orders {
		if o.Status != admin.OrderPending {
			t.Errorf("order %s status = %q, want pending", o.ID, o.Status)
		}
	}

	// Status transitions
	rec = doRequest(t, s, http.MethodPost, "/api/admin/orders/ORD-2024-001/status",
		[]byte(`{"status":"completed"}`), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var order admin.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Status != admin.OrderCompleted {
		t.Errorf("order status = %q, want completed", order.Status)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/admin/orders/ORD-2024-001/status",
		[]byte(`{"status":"shipped"}`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status code = %d, want 400", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/admin/orders/missing/status",
		[]byte(`{"status":"completed"}`), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing order code = %d, want 404", rec.Code)
	}
}

func TestAdmin_Customers(t *testing.T) {
	s := newTestServer(t, &stubSource{rows: storefrontRows})

	rec := doRequest(t, s, http.MethodGet, "/api/admin/customers?tier="+admin.TierGold, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var customers []admin.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &customers); err != nil {
		t.Fatalf("decode customers: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != "CUST-001" {
		t.Errorf("tier=gold = %v, want CUST-001", customers)
	}
}
