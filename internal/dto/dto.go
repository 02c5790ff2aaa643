package dto

import "storefront/internal/model"

type CreateOrderRequest struct {
	GuestName   string            `json:"guestName"`
	ContactInfo string            `json:"contactInfo"`
	Items       []model.OrderItem `json:"items"`
	Status      model.Status      `json:"status"`
}

type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

type CheckoutRequest struct {
	GuestName   string            `json:"guestName"`
	ContactInfo string            `json:"contactInfo"`
	Items       []model.OrderItem `json:"items"`
}

type CheckoutResponse struct {
	SessionURL string `json:"sessionUrl"`
}

type AdminAuthRequest struct {
	Password string `json:"password"`
}

type AdminAuthResponse struct {
	Authenticated bool `json:"authenticated"`
}

type AdminListRequest struct {
	Password string `json:"password"`
	// Filter is "", "unpaid" or "paid"; unpaid includes pending orders.
	Filter string `json:"filter"`
}

type AdminOrderRequest struct {
	Password string `json:"password"`
	OrderID  string `json:"orderId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
