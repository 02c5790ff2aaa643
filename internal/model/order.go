package model

import "time"

type Status string

const (
	// StatusUnpaid is assigned to manually placed orders.
	StatusUnpaid Status = "unpaid"
	// StatusPending is assigned to orders awaiting a hosted checkout.
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// AwaitingPayment reports whether the order has not been paid yet.
// unpaid and pending come from two different creation paths but mean the
// same thing on every read path.
func (s Status) AwaitingPayment() bool {
	return s == StatusUnpaid || s == StatusPending
}

func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusPending || s == StatusPaid
}

// OrderItem is a snapshot of a catalog product at order time. Catalog
// changes never retroactively alter historical orders.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

// Order is the only persisted entity in the order store. The ID doubles
// as the store key; it is injected on read and never written into the
// stored value.
type Order struct {
	ID              string      `json:"id,omitempty"`
	GuestName       string      `json:"guestName"`
	ContactInfo     string      `json:"contactInfo"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          Status      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	StripeSessionID string      `json:"stripeSessionId,omitempty"`
}

// ItemsTotal sums price*quantity over a set of snapshot items.
func ItemsTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
