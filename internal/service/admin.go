package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"storefront/internal/apperr"
	"storefront/internal/model"
)

// AdminService gates every order mutation behind the shared admin secret.
// There is no session issuance; every call re-authenticates.
type AdminService interface {
	Authenticate(password string) error
	ListOrders(ctx context.Context, password, filter string) ([]*model.Order, error)
	MarkPaid(ctx context.Context, password, orderID string) error
	DeleteOrder(ctx context.Context, password, orderID string) error
}

type adminServiceImpl struct {
	password     string
	orderService OrderService
}

func NewAdminService(password string, orderService OrderService) AdminService {
	return &adminServiceImpl{
		password:     password,
		orderService: orderService,
	}
}

func (s *adminServiceImpl) Authenticate(password string) error {
	if s.password == "" {
		return fmt.Errorf("admin password is not configured: %w", apperr.ErrInfrastructure)
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return fmt.Errorf("invalid admin password: %w", apperr.ErrUnauthorized)
	}
	return nil
}

func (s *adminServiceImpl) ListOrders(ctx context.Context, password, filter string) ([]*model.Order, error) {
	if err := s.Authenticate(password); err != nil {
		return nil, err
	}
	return s.orderService.ListOrders(ctx, filter)
}

func (s *adminServiceImpl) MarkPaid(ctx context.Context, password, orderID string) error {
	if err := s.Authenticate(password); err != nil {
		return err
	}
	if orderID == "" {
		return fmt.Errorf("order id is required: %w", apperr.ErrValidation)
	}
	return s.orderService.MarkPaid(ctx, orderID)
}

func (s *adminServiceImpl) DeleteOrder(ctx context.Context, password, orderID string) error {
	if err := s.Authenticate(password); err != nil {
		return err
	}
	if orderID == "" {
		return fmt.Errorf("order id is required: %w", apperr.ErrValidation)
	}
	return s.orderService.DeleteOrder(ctx, orderID)
}
