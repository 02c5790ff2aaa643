package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/apperr"
	"storefront/internal/model"
	"storefront/internal/store"
)

// OrderKeyPrefix namespaces every order key in the store.
const OrderKeyPrefix = "order:"

type OrderRepository interface {
	// Save overwrites the whole record at order.ID.
	Save(ctx context.Context, order *model.Order) error
	Find(ctx context.Context, id string) (*model.Order, error)
	// Delete is idempotent; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.Order, error)
}

type orderRepoImpl struct {
	kv     store.KV
	logger *logrus.Logger
}

func NewOrderRepository(kv store.KV, logger *logrus.Logger) OrderRepository {
	return &orderRepoImpl{kv: kv, logger: logger}
}

func (r *orderRepoImpl) Save(ctx context.Context, order *model.Order) error {
	if order.ID == "" {
		return fmt.Errorf("order has no id: %w", apperr.ErrValidation)
	}

	value, err := encodeOrder(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.ID, err)
	}
	if err := r.kv.Set(ctx, order.ID, value); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInfrastructure, err)
	}
	return nil
}

func (r *orderRepoImpl) Find(ctx context.Context, id string) (*model.Order, error) {
	value, err := r.kv.Get(ctx, id)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInfrastructure, err)
	}

	order, err := decodeOrder(id, value)
	if err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	return order, nil
}

func (r *orderRepoImpl) Delete(ctx context.Context, id string) error {
	if err := r.kv.Del(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInfrastructure, err)
	}
	return nil
}

// List scans the order namespace and bulk-reads every record. Records
// that fail to decode are skipped so one corrupt value cannot take the
// whole listing down.
func (r *orderRepoImpl) List(ctx context.Context) ([]*model.Order, error) {
	keys, err := r.kv.Keys(ctx, OrderKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInfrastructure, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := r.kv.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInfrastructure, err)
	}

	orders := make([]*model.Order, 0, len(keys))
	for i, value := range values {
		if value == nil {
			continue // deleted between scan and read
		}
		order, err := decodeOrder(keys[i], *value)
		if err != nil {
			r.logger.WithError(err).WithField("order_id", keys[i]).
				Warn("Skipping undecodable order record")
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// encodeOrder marshals the record without its id. The key is the single
// source of truth for the id; it is injected back on read.
func encodeOrder(order *model.Order) (string, error) {
	stored := *order
	stored.ID = ""
	b, err := json.Marshal(&stored)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeOrder(key, value string) (*model.Order, error) {
	var order model.Order
	if err := json.Unmarshal([]byte(value), &order); err != nil {
		return nil, err
	}
	order.ID = key
	return &order, nil
}
