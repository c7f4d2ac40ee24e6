package report

import "time"

type OrderStatus string

const (
	StatusNew            OrderStatus = "new"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type LineItem struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int64   `json:"quantity"`
}

// Order is an already-fetched order record. The engine never loads or
// mutates these; each request works over its own immutable snapshot.
type Order struct {
	ID            int64      `json:"id"`
	StoreID       int64      `json:"storeId"`
	PlacedAt      time.Time  `json:"placedAt"`
	Status        OrderStatus `json:"status"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	Customer      Customer   `json:"customer"`
	Items         []LineItem `json:"lineItems"`
}

// Realized reports whether the order counts toward revenue.
func (o Order) Realized() bool {
	return o.Status == StatusDelivered || o.Status == StatusCompleted
}
