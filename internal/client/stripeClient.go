package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/config"
)

// signatureTolerance bounds how old a webhook timestamp may be before the
// event is rejected as a possible replay.
const signatureTolerance = 5 * time.Minute

type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error)
	VerifySignature(header string, payload []byte) error
}

type LineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64 // minor currency units
	Currency   string
	Quantity   int64
}

type CheckoutSessionParams struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is the slice of the provider's session object we read
// back: the session id (for audit correlation) and the hosted redirect URL.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	secretKey     string
	webhookSecret string
	now           func() time.Time
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    stripeCfg.BaseApiURL,
		secretKey:     stripeCfg.SecretKey,
		webhookSecret: stripeCfg.WebhookSecret,
		now:           time.Now,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
		form.Set(prefix+"[price_data][currency]", item.Currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.ImageURL != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.ImageURL)
		}
	}
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(b))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("stripe session %s has no redirect url", session.ID)
	}

	return &session, nil
}

// VerifySignature checks the provider's signature header against the
// configured webhook secret. The header carries a unix timestamp and one
// or more hex HMAC-SHA256 digests of "<timestamp>.<payload>".
func (c *stripeClientImpl) VerifySignature(header string, payload []byte) error {
	if c.webhookSecret == "" {
		return fmt.Errorf("webhook secret is not configured")
	}
	if header == "" {
		return fmt.Errorf("missing signature header")
	}

	var timestamp int64
	var signatures [][]byte
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("malformed signature timestamp: %w", err)
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(v)
			if err != nil {
				continue // ignore undecodable entries, another v1 may match
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("signature header has no timestamp or v1 signature")
	}

	age := c.now().Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	expected := computeSignature(c.webhookSecret, timestamp, payload)
	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return fmt.Errorf("no matching v1 signature")
}

func computeSignature(secret string, timestamp int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignPayload builds a valid signature header for a payload. Used by the
// webhook tests and by local tooling that replays provider events.
func SignPayload(secret string, at time.Time, payload []byte) string {
	ts := at.Unix()
	sig := computeSignature(secret, ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(sig))
}
