package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// Status filters accepted by ListOrders.
const (
	FilterAll    = ""
	FilterUnpaid = "unpaid"
	FilterPaid   = "paid"
)

type OrderService interface {
	// CreateOrder validates the input, assigns an id, computes the total
	// and persists the record. Status defaults to unpaid when empty.
	CreateOrder(ctx context.Context, guestName, contactInfo string, items []model.OrderItem, status model.Status) (*model.Order, error)
	// ListOrders returns all orders with ids populated. The unpaid filter
	// matches both unpaid and pending records.
	ListOrders(ctx context.Context, filter string) ([]*model.Order, error)
	// MarkPaid transitions an order to paid. Idempotent on already-paid
	// orders; absent ids fail with a not-found error.
	MarkPaid(ctx context.Context, id string) error
	DeleteOrder(ctx context.Context, id string) error
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{orderRepo: orderRepo}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, guestName, contactInfo string, items []model.OrderItem, status model.Status) (*model.Order, error) {
	if strings.TrimSpace(guestName) == "" {
		return nil, fmt.Errorf("guest name is required: %w", apperr.ErrValidation)
	}
	if strings.TrimSpace(contactInfo) == "" {
		return nil, fmt.Errorf("contact info is required: %w", apperr.ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order has no items: %w", apperr.ErrValidation)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive: %w", apperr.ErrValidation)
		}
	}
	if status == "" {
		status = model.StatusUnpaid
	}
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, apperr.ErrValidation)
	}

	order := &model.Order{
		ID:          NewOrderID(),
		GuestName:   guestName,
		ContactInfo: contactInfo,
		Items:       items,
		Total:       model.ItemsTotal(items),
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, filter string) ([]*model.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	switch filter {
	case FilterAll:
		return orders, nil
	case FilterUnpaid:
		filtered := make([]*model.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status.AwaitingPayment() {
				filtered = append(filtered, o)
			}
		}
		return filtered, nil
	case FilterPaid:
		filtered := make([]*model.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == model.StatusPaid {
				filtered = append(filtered, o)
			}
		}
		return filtered, nil
	default:
		return nil, fmt.Errorf("unknown status filter %q: %w", filter, apperr.ErrValidation)
	}
}

func (s *orderServiceImpl) MarkPaid(ctx context.Context, id string) error {
	order, err := s.orderRepo.Find(ctx, id)
	if err != nil {
		return err
	}

	order.Status = model.StatusPaid
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return fmt.Errorf("persist paid order: %w", err)
	}
	return nil
}

func (s *orderServiceImpl) DeleteOrder(ctx context.Context, id string) error {
	return s.orderRepo.Delete(ctx, id)
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewOrderID builds an id of the form order:<epoch-millis>-<9 random
// base36 chars>. Collisions are possible but negligible and not checked.
func NewOrderID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}
	return fmt.Sprintf("%s%d-%s", repository.OrderKeyPrefix, time.Now().UnixMilli(), suffix)
}
