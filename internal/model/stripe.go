package model

// StripeWebhookEvent is the slice of the provider's event envelope this
// service cares about. Everything else in the payload is ignored.
type StripeWebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// OrderID returns the correlated order id attached as session metadata
// when the checkout session was created, or "" when absent.
func (e *StripeWebhookEvent) OrderID() string {
	return e.Data.Object.Metadata["orderId"]
}
