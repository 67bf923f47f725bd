package admin

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidOrderStatus reports a status transition to an unknown status.
var ErrInvalidOrderStatus = errors.New("admin: invalid order status")

// Order statuses, in lifecycle order.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// OrderCustomer is the customer contact details embedded in an order.
type OrderCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderProduct is the product reference embedded in an order.
type OrderProduct struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Order is one back-office order record. Amounts are in rupiah.
type Order struct {
	ID            string        `json:"id"`
	Customer      OrderCustomer `json:"customer"`
	Product       OrderProduct  `json:"product"`
	Amount        int64         `json:"amount"`
	Status        string        `json:"status"`
	Date          string        `json:"date"`
	PaymentMethod string        `json:"paymentMethod"`
}

// OrderQuery filters the admin order listing. Zero values pass through.
type OrderQuery struct {
	Search string // matches order id, customer name or product name
	Status string // one of the Order* statuses, or "all"/empty
}

// OrderStore is the in-memory order repository. There is no real order
// persistence; the seed data stands in for a backend.
type OrderStore struct {
	mu     sync.RWMutex
	orders []Order
}

// NewOrderStore creates a store with the demo order set.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: seedOrders()}
}

// List returns the orders matching the query, in insertion order.
func (s *OrderStore) List(q OrderQuery) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Order{}
	term := strings.ToLower(q.Search)
	for _, o := range s.orders {
		if term != "" &&
			!strings.Contains(strings.ToLower(o.ID), term) &&
			!strings.Contains(strings.ToLower(o.Customer.Name), term) &&
			!strings.Contains(strings.ToLower(o.Product.Name), term) {
			continue
		}
		if q.Status != "" && q.Status != StatusAll && o.Status != q.Status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// UpdateStatus moves an order to a new status.
func (s *OrderStore) UpdateStatus(id, status string) (Order, error) {
	if !validOrderStatus(status) {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return s.orders[i], nil
		}
	}
	return Order{}, ErrOrderNotFound
}

func validOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func seedOrders() []Order {
	return []Order{
		{
			ID: "ORD-2024-001",
			Customer: OrderCustomer{
				Name:  "Budi Santoso",
				Email: "budi@email.com",
				Phone: "+62 812 3456 7890",
			},
			Product: OrderProduct{
				ID:    "PROD-001",
				Name:  "Mechanical Gear Assembly",
				Image: "https://via.placeholder.com/150",
			},
			Amount:        299000,
			Status:        OrderCompleted,
			Date:          "2024-01-15 10:30",
			PaymentMethod: "Transfer Bank",
		},
		{
			ID: "ORD-2024-002",
			Customer: OrderCustomer{
				Name:  "Siti Rahayu",
				Email: "siti@email.com",
				Phone: "+62 812 987 6543",
			},
			Product: OrderProduct{
				ID:    "PROD-002",
				Name:  "3D Printer Model",
				Image: "https://via.placeholder.com/150",
			},
			Amount:        149000,
			Status:        OrderProcessing,
			Date:          "2024-01-15 11:45",
			PaymentMethod: "E-Wallet",
		},
		{
			ID: "ORD-2024-003",
			Customer: OrderCustomer{
				Name:  "Ahmad Wijaya",
				Email: "ahmad@email.com",
				Phone: "+62 812 111 2222",
			},
			Product: OrderProduct{
				ID:    "PROD-003",
				Name:  "AutoCAD Blueprint",
				Image: "https://via.placeholder.com/150",
			},
			Amount:        199000,
			Status:        OrderPending,
			Date:          "2024-01-15 13:20",
			PaymentMethod: "Transfer Bank",
		},
		{
			ID: "ORD-2024-004",
			Customer: OrderCustomer{
				Name:  "Dewi Lestari",
				Email: "dewi@email.com",
				Phone: "+62 812 333 4444",
			},
			Product: OrderProduct{
				ID:    "PROD-001",
				Name:  "Mechanical Gear Assembly",
				Image: "https://via.placeholder.com/150",
			},
			Amount:        299000,
			Status:        OrderCancelled,
			Date:          "2024-01-14 16:05",
			PaymentMethod: "E-Wallet",
		},
	}
}
