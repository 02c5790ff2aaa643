package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"storefront/internal/apperr"
	"storefront/internal/client"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const eventCheckoutCompleted = "checkout.session.completed"

type CheckoutResult struct {
	OrderID    string
	SessionURL string
}

type CheckoutService interface {
	// CreateCheckoutSession persists a pending order, then asks the
	// provider for a hosted session carrying the order id as metadata.
	CreateCheckoutSession(ctx context.Context, guestName, contactInfo string, items []model.OrderItem) (*CheckoutResult, error)
	// HandleWebhook verifies and applies one inbound provider event.
	HandleWebhook(ctx context.Context, signature string, payload []byte) error
}

type checkoutServiceImpl struct {
	stripeClient     client.StripeClient
	orderService     OrderService
	orderRepo        repository.OrderRepository
	webhookEventRepo repository.WebhookEventRepository
	baseURL          string
	currency         string
	logger           *logrus.Logger
}

func NewCheckoutService(
	stripeClient client.StripeClient,
	orderService OrderService,
	orderRepo repository.OrderRepository,
	webhookEventRepo repository.WebhookEventRepository,
	baseURL string,
	currency string,
	logger *logrus.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		stripeClient:     stripeClient,
		orderService:     orderService,
		orderRepo:        orderRepo,
		webhookEventRepo: webhookEventRepo,
		baseURL:          baseURL,
		currency:         currency,
		logger:           logger,
	}
}

func (s *checkoutServiceImpl) CreateCheckoutSession(ctx context.Context, guestName, contactInfo string, items []model.OrderItem) (*CheckoutResult, error) {
	// The order is written before the provider is contacted so a record
	// exists even when the session call fails. An orphaned pending order
	// without a session id is recoverable through the admin surface.
	order, err := s.orderService.CreateOrder(ctx, guestName, contactInfo, items, model.StatusPending)
	if err != nil {
		return nil, err
	}

	lineItems := make([]client.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = client.LineItem{
			Name:       item.Name,
			ImageURL:   item.ImageURL,
			UnitAmount: int64(math.Round(item.Price * 100)),
			Currency:   s.currency,
			Quantity:   int64(item.Quantity),
		}
	}

	session, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		LineItems:  lineItems,
		SuccessURL: s.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.baseURL + "/cart",
		Metadata:   map[string]string{"orderId": order.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %v", apperr.ErrInfrastructure, err)
	}

	// Second write; not atomic with the creation above. The session id is
	// audit-only, so a concurrent read seeing the order without it is fine.
	order.StripeSessionID = session.ID
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("attach session id to order %s: %w", order.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"session_id": session.ID,
	}).Info("Checkout session created")

	return &CheckoutResult{OrderID: order.ID, SessionURL: session.URL}, nil
}

func (s *checkoutServiceImpl) HandleWebhook(ctx context.Context, signature string, payload []byte) error {
	if err := s.stripeClient.VerifySignature(signature, payload); err != nil {
		return fmt.Errorf("%w: webhook signature: %v", apperr.ErrUnauthorized, err)
	}

	var event model.StripeWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w: %v", apperr.ErrValidation, err)
	}

	log := s.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
	})

	if event.ID != "" {
		seen, err := s.webhookEventRepo.Exists(ctx, event.ID)
		if err != nil {
			return fmt.Errorf("%w: webhook audit lookup: %v", apperr.ErrInfrastructure, err)
		}
		if seen {
			log.Info("Webhook event already processed, acknowledging")
			return nil
		}
	}

	switch event.Type {
	case eventCheckoutCompleted:
		if err := s.applyCheckoutCompleted(ctx, &event, log); err != nil {
			return err
		}
	default:
		log.Debug("Ignoring unhandled webhook event type")
	}

	if event.ID != "" {
		if err := s.webhookEventRepo.MarkProcessed(ctx, event.ID, event.Type); err != nil {
			// Audit-only write; a miss means the event may be applied
			// twice, which converges on the same paid status.
			log.WithError(err).Warn("Failed to record webhook event")
		}
	}
	return nil
}

// applyCheckoutCompleted flips the correlated order to paid. Events with
// no order id or an unknown order id are acknowledged without error so the
// provider does not retry-storm on stale or foreign sessions.
func (s *checkoutServiceImpl) applyCheckoutCompleted(ctx context.Context, event *model.StripeWebhookEvent, log *logrus.Entry) error {
	orderID := event.OrderID()
	if orderID == "" {
		log.Warn("Checkout completion without order id metadata")
		return nil
	}

	if err := s.orderService.MarkPaid(ctx, orderID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			log.WithField("order_id", orderID).Warn("Order for completed checkout not found")
			return nil
		}
		return err
	}

	log.WithField("order_id", orderID).Info("Order marked as paid")
	return nil
}
