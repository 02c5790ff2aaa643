package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/store"
)

const (
	adminPassword = "super-secret"
	webhookSecret = "whsec_server_test"
)

type fakeProducts struct{}

func (fakeProducts) List(context.Context) ([]*model.Product, error) {
	return []*model.Product{{ID: "puto", Name: "Puto", Price: 1.00}}, nil
}

func (fakeProducts) SeedDefaults(context.Context) error { return nil }

type fakeWebhookEvents struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (f *fakeWebhookEvents) Exists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[id], nil
}

func (f *fakeWebhookEvents) MarkProcessed(_ context.Context, id, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[id] = true
	return nil
}

// newTestServer assembles the full HTTP surface over an in-memory store
// and a fake hosted gateway.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := "cs_" + uuid.NewString()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"url":"https://checkout.example.com/pay/%s"}`, sessionID, sessionID)
	}))
	t.Cleanup(gateway.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	stripeClient := client.NewStripeClient(&config.Stripe{
		BaseApiURL:    gateway.URL,
		SecretKey:     "sk_test_1",
		WebhookSecret: webhookSecret,
	})

	orderRepo := repository.NewOrderRepository(store.NewMemory(), logger)
	orderService := service.NewOrderService(orderRepo)
	checkoutService := service.NewCheckoutService(
		stripeClient, orderService, orderRepo,
		&fakeWebhookEvents{seen: make(map[string]bool)},
		"http://shop.test", "usd", logger,
	)
	adminService := service.NewAdminService(adminPassword, orderService)

	return NewServer(orderService, checkoutService, adminService, fakeProducts{}, logger)
}

func doJSON(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProducts(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "puto", products[0].ID)
}

func TestPlaceOrder(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/order",
		`{"guestName":"Maria","contactInfo":"maria@example.com","items":[{"productId":"puto","name":"Puto","price":1.0,"quantity":3}]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Order placed successfully!", resp.Message)
	assert.True(t, strings.HasPrefix(resp.OrderID, "order:"))
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/order", `{"guestName":"Maria"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_EmptyCart(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/checkout",
		`{"guestName":"Maria","contactInfo":"maria@example.com","items":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminAuth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/admin/auth",
		fmt.Sprintf(`{"password":%q}`, adminPassword), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/admin/auth", `{"password":"guess"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminEndpoints_Unauthorized(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/admin/orders", "/api/admin/mark-paid", "/api/admin/delete-order"} {
		rec := doJSON(t, s, http.MethodPost, path, `{"password":"guess","orderId":"order:1-x"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAdminMarkPaid_StatusCodes(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/admin/mark-paid",
		fmt.Sprintf(`{"password":%q}`, adminPassword), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/admin/mark-paid",
		fmt.Sprintf(`{"password":%q,"orderId":"order:1-notthere"}`, adminPassword), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhook_BadSignature(t *testing.T) {
	s := newTestServer(t)
	payload := `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`

	rec := doJSON(t, s, http.MethodPost, "/api/webhooks/stripe", payload, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/webhooks/stripe", payload,
		map[string]string{"Stripe-Signature": client.SignPayload("whsec_wrong", time.Now(), []byte(payload))})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestCheckoutLifecycle walks the full happy path: checkout creates a
// pending order and a session, the signed confirmation flips it to paid,
// and the admin unpaid queue no longer shows it.
func TestCheckoutLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/checkout",
		`{"guestName":"Maria","contactInfo":"maria@example.com","items":[{"productId":"sapin-sapin","name":"Sapin-Sapin","price":3.5,"quantity":2},{"productId":"leche-flan","name":"Leche Flan","price":6,"quantity":1}]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var checkoutResp struct {
		SessionURL string `json:"sessionUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkoutResp))
	assert.Contains(t, checkoutResp.SessionURL, "https://checkout.example.com/pay/")

	// the pending order is visible to the admin queue with its id and total
	rec = doJSON(t, s, http.MethodPost, "/api/admin/orders",
		fmt.Sprintf(`{"password":%q,"filter":"unpaid"}`, adminPassword), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	orderID := orders[0].ID
	assert.Equal(t, 13.0, orders[0].Total)
	assert.True(t, orders[0].Status.AwaitingPayment())

	// signed provider confirmation referencing the order
	payload := fmt.Sprintf(
		`{"id":"evt_lifecycle","type":"checkout.session.completed","data":{"object":{"id":"cs_1","metadata":{"orderId":%q}}}}`,
		orderID)
	rec = doJSON(t, s, http.MethodPost, "/api/webhooks/stripe", payload,
		map[string]string{"Stripe-Signature": client.SignPayload(webhookSecret, time.Now(), []byte(payload))})
	require.Equal(t, http.StatusOK, rec.Code)

	// gone from the unpaid queue, present in the paid listing
	rec = doJSON(t, s, http.MethodPost, "/api/admin/orders",
		fmt.Sprintf(`{"password":%q,"filter":"unpaid"}`, adminPassword), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Empty(t, orders)

	rec = doJSON(t, s, http.MethodPost, "/api/admin/orders",
		fmt.Sprintf(`{"password":%q,"filter":"paid"}`, adminPassword), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, model.StatusPaid, orders[0].Status)

	// delete, then verify the listing is empty
	rec = doJSON(t, s, http.MethodPost, "/api/admin/delete-order",
		fmt.Sprintf(`{"password":%q,"orderId":%q}`, adminPassword, orderID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/admin/orders",
		fmt.Sprintf(`{"password":%q}`, adminPassword), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Empty(t, orders)
}
