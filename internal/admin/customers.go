package admin

import (
	"strings"
	"sync"
)

// Customer tiers.
const (
	TierBronze = "bronze"
	TierSilver = "silver"
	TierGold   = "gold"
)

// Customer is one back-office customer record. TotalSpent is in rupiah.
type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	TotalOrders int    `json:"totalOrders"`
	TotalSpent  int64  `json:"totalSpent"`
	JoinedDate  string `json:"joinedDate"`
	Status      string `json:"status"` // StatusActive or StatusInactive
	Tier        string `json:"tier"`
}

// CustomerQuery filters the admin customer listing. Zero values pass through.
type CustomerQuery struct {
	Search string // matches id, name or email
	Status string // StatusActive, StatusInactive, or "all"/empty
	Tier   string // one of the Tier* values, or "all"/empty
}

// CustomerStore is the in-memory customer repository. As with orders, the
// seed data stands in for a backend.
type CustomerStore struct {
	mu        sync.RWMutex
	customers []Customer
}

// NewCustomerStore creates a store with the demo customer set.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{customers: seedCustomers()}
}

// List returns the customers matching the query, in insertion order.
func (s *CustomerStore) List(q CustomerQuery) []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Customer{}
	term := strings.ToLower(q.Search)
	for _, c := range s.customers {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.ID), term) &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Email), term) {
			continue
		}
		if q.Status != "" && q.Status != StatusAll && c.Status != q.Status {
			continue
		}
		if q.Tier != "" && q.Tier != StatusAll && c.Tier != q.Tier {
			continue
		}
		out = append(out, c)
	}
	return out
}

func seedCustomers() []Customer {
	return []Customer{
		{
			ID:          "CUST-001",
			Name:        "Budi Santoso",
			Email:       "budi@email.com",
			Phone:       "+62 812 3456 7890",
			Location:    "Jakarta, Indonesia",
			TotalOrders: 12,
			TotalSpent:  3580000,
			JoinedDate:  "2023-05-15",
			Status:      StatusActive,
			Tier:        TierGold,
		},
		{
			ID:          "CUST-002",
			Name:        "Siti Rahayu",
			Email:       "siti@email.com",
			Phone:       "+62 812 987 6543",
			Location:    "Surabaya, Indonesia",
			TotalOrders: 8,
			TotalSpent:  1192000,
			JoinedDate:  "2023-08-22",
			Status:      StatusActive,
			Tier:        TierSilver,
		},
		{
			ID:          "CUST-003",
			Name:        "Ahmad Wijaya",
			Email:       "ahmad@email.com",
			Phone:       "+62 812 111 2222",
			Location:    "Bandung, Indonesia",
			TotalOrders: 5,
			TotalSpent:  495000,
			JoinedDate:  "2023-10-10",
			Status:      StatusActive,
			Tier:        TierBronze,
		},
		{
			ID:          "CUST-004",
			Name:        "Dewi Lestari",
			Email:       "dewi@email.com",
			Phone:       "+62 812 333 4444",
			Location:    "Yogyakarta, Indonesia",
			TotalOrders: 2,
			TotalSpent:  248000,
			JoinedDate:  "2024-01-05",
			Status:      StatusInactive,
			Tier:        TierBronze,
		},
	}
}
