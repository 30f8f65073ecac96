// Package memory implements an in-memory payment ledger.
package memory

import (
	"context"
	"errors"
	"sync"

	"kopioutlet/pkg/order"
	"kopioutlet/pkg/payment"
)

// OrderGetter is the view of the order store the ledger needs to validate
// a submission.
type OrderGetter interface {
	Get(ctx context.Context, id string) (order.Order, error)
}

// Ledger provides an in-memory implementation of payment.Ledger.
type Ledger struct {
	mu       sync.RWMutex
	payments map[string]payment.Payment
	orders   OrderGetter
}

// New creates a ledger that validates submissions against orders.
func New(orders OrderGetter) *Ledger {
	return &Ledger{payments: make(map[string]payment.Payment), orders: orders}
}

// Submit checks, in order: an existing payment, the order's existence, and
// the order's acceptance of the amount; the first failing check decides the
// status. The whole sequence runs under the ledger lock so concurrent
// submissions for one order id produce exactly one accepted payment.
//
// The order lookup happens while only the ledger lock is held. A removal of
// the order racing with Submit can register a payment against an order
// being deleted; that window exists in the reference behavior and is kept.
func (l *Ledger) Submit(ctx context.Context, orderID string, candidate payment.Payment) (payment.Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if registered, ok := l.payments[orderID]; ok {
		return payment.Status{Code: payment.Duplicate, Message: "Duplicate Payment", Payment: &registered}, nil
	}

	o, err := l.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return payment.Status{Code: payment.InvalidOrder, Message: "Invalid Order ID"}, nil
		}
		return payment.Status{}, err
	}

	if !o.AmountAcceptable(candidate.Amount) {
		return payment.Status{Code: payment.InsufficientFunds, Message: "Insufficient Funds"}, nil
	}

	registered := payment.Payment{
		OrderID:    orderID,
		Name:       candidate.Name,
		CardNumber: candidate.CardNumber,
		ExpiryDate: candidate.ExpiryDate,
		Amount:     candidate.Amount,
	}
	l.payments[orderID] = registered
	return payment.Status{Code: payment.Accepted, Message: "Payment Accepted", Payment: &registered}, nil
}

// Get retrieves the payment registered for an order.
func (l *Ledger) Get(ctx context.Context, orderID string) (payment.Payment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.payments[orderID]
	if !ok {
		return payment.Payment{}, payment.ErrNotFound
	}
	return p, nil
}

// Remove deletes the payment for an order. Removing an absent payment is
// not an error.
func (l *Ledger) Remove(ctx context.Context, orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.payments, orderID)
	return nil
}
