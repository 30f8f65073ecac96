// Package outlet orchestrates the order store and payment ledger into the
// operations the transport layer exposes.
package outlet

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"kopioutlet/pkg/order"
	"kopioutlet/pkg/payment"
)

// Service is the entry point for all outlet operations. It holds no state
// of its own beyond references to the stores it coordinates.
type Service struct {
	orders   order.Store
	payments payment.Ledger
	log      *zap.Logger
}

// New creates the outlet service.
func New(orders order.Store, payments payment.Ledger, log *zap.Logger) *Service {
	return &Service{orders: orders, payments: payments, log: log}
}

// AddOrder prices and stores a new order, replacing any order that already
// uses the same id.
func (s *Service) AddOrder(ctx context.Context, o order.Order) (order.Order, error) {
	return s.orders.Create(ctx, o)
}

// GetOrder retrieves an order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (order.Order, error) {
	return s.orders.Get(ctx, id)
}

// UpdateOrder changes an unlocked order's contents and reprices it.
func (s *Service) UpdateOrder(ctx context.Context, id string, upd order.Order) (order.Order, error) {
	return s.orders.Update(ctx, id, upd)
}

// PendingOrders returns the orders not yet locked.
func (s *Service) PendingOrders(ctx context.Context) ([]order.Order, error) {
	return s.orders.ListUnlocked(ctx)
}

// LockOrder makes an order immutable to further updates. It stays visible
// and payable.
func (s *Service) LockOrder(ctx context.Context, id string) (order.Order, error) {
	return s.orders.Lock(ctx, id)
}

// RemoveOrder deletes an order and any payment registered for it. The two
// deletions are separate per-map operations, not one atomic step: a
// concurrent reader can briefly observe the order gone while the payment
// remains. Reports whether an order was removed.
func (s *Service) RemoveOrder(ctx context.Context, id string) (bool, error) {
	removed := true
	if err := s.orders.Remove(ctx, id); err != nil {
		if !errors.Is(err, order.ErrNotFound) {
			return false, err
		}
		removed = false
	}
	if err := s.payments.Remove(ctx, id); err != nil {
		s.log.Error("remove payment", zap.String("orderId", id), zap.Error(err))
		return removed, err
	}
	return removed, nil
}

// DoPayment submits a payment for an order and returns its status.
func (s *Service) DoPayment(ctx context.Context, id string, candidate payment.Payment) (payment.Status, error) {
	return s.payments.Submit(ctx, id, candidate)
}

// GetPayment retrieves the payment registered for an order.
func (s *Service) GetPayment(ctx context.Context, id string) (payment.Payment, error) {
	return s.payments.Get(ctx, id)
}
