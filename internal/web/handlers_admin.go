package web

// handlers_admin.go serves the dashboard's JSON API. The stores behind these
// handlers are in-memory; products are seeded from the sheet at startup and
// edits do not write back to the spreadsheet.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mechvault/catalog/internal/admin"
	"github.com/mechvault/catalog/internal/catalog"
)

// adminProductsResponse bundles the filtered listing with the overall counts
// shown in the dashboard header.
type adminProductsResponse struct {
	Products []catalog.Product  `json:"products"`
	Counts   adminProductCounts `json:"counts"`
}

type adminProductCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

func (s *Server) handleAdminListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products := s.products.List(admin.ProductQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	})

	total, active, inactive := s.products.Count()
	writeJSON(w, r, http.StatusOK, adminProductsResponse{
		Products: products,
		Counts:   adminProductCounts{Total: total, Active: active, Inactive: inactive},
	})
}

func (s *Server) handleAdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	// Absent is_active means active; Decode only overwrites fields the body carries.
	p := catalog.Product{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErrorJSON(w, catalog.UserMessage{
			Message: "Invalid request body",
			Action:  "Send a JSON product object",
			Code:    "REQ001",
		}, http.StatusBadRequest)
		return
	}
	if p.Title == "" {
		writeErrorJSON(w, catalog.UserMessage{
			Message: "Product title is required",
			Code:    "REQ002",
		}, http.StatusBadRequest)
		return
	}

	created := s.products.Create(p)
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleAdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p := catalog.Product{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErrorJSON(w, catalog.UserMessage{
			Message: "Invalid request body",
			Action:  "Send a JSON product object",
			Code:    "REQ001",
		}, http.StatusBadRequest)
		return
	}

	updated, err := s.products.Update(id, p)
	if err != nil {
		s.respondError(w, r, err, statusForAdminErr(err))
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleAdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.products.Delete(id); err != nil {
		s.respondError(w, r, err, statusForAdminErr(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminToggleProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	toggled, err := s.products.ToggleActive(id)
	if err != nil {
		s.respondError(w, r, err, statusForAdminErr(err))
		return
	}
	writeJSON(w, r, http.StatusOK, toggled)
}

func (s *Server) handleAdminListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders := s.orders.List(admin.OrderQuery{
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	writeJSON(w, r, http.StatusOK, orders)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, catalog.UserMessage{
			Message: "Invalid request body",
			Action:  `Send {"status": "<pending|processing|completed|cancelled>"}`,
			Code:    "REQ001",
		}, http.StatusBadRequest)
		return
	}

	order, err := s.orders.UpdateStatus(id, req.Status)
	if err != nil {
		s.respondError(w, r, err, statusForAdminErr(err))
		return
	}
	writeJSON(w, r, http.StatusOK, order)
}

func (s *Server) handleAdminListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	customers := s.customers.List(admin.CustomerQuery{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Tier:   q.Get("tier"),
	})
	writeJSON(w, r, http.StatusOK, customers)
}

// statusForAdminErr maps store errors to HTTP status codes.
func statusForAdminErr(err error) int {
	switch {
	case errors.Is(err, admin.ErrProductNotFound), errors.Is(err, admin.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, admin.ErrInvalidOrderStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
