package payment

import (
	"context"
	"encoding/xml"
	"errors"
)

// Payment records a single accepted charge against an order.
type Payment struct {
	XMLName    xml.Name `json:"-" xml:"payment"`
	OrderID    string   `json:"orderId" xml:"orderId"`
	Name       string   `json:"name" xml:"name"`
	CardNumber string   `json:"cardNumber" xml:"cardNumber"`
	ExpiryDate string   `json:"expiryDate" xml:"expiryDate"`
	Amount     float64  `json:"amount" xml:"amount"`
}

// Code classifies the outcome of a payment submission.
type Code int

const (
	// Accepted means the payment was registered.
	Accepted Code = iota
	// Duplicate means a payment already exists for the order.
	Duplicate
	// InvalidOrder means no order exists for the id.
	InvalidOrder
	// InsufficientFunds means the order rejected the submitted amount.
	InsufficientFunds
)

// Status is the result of a payment submission. Message carries the
// customer-facing text; Payment is the registered payment for Accepted and
// Duplicate outcomes, nil otherwise.
type Status struct {
	XMLName xml.Name `json:"-" xml:"paymentStatus"`
	Code    Code     `json:"-" xml:"-"`
	Message string   `json:"paymentStatus" xml:"status"`
	Payment *Payment `json:"payment,omitempty" xml:"payment,omitempty"`
}

// Ledger defines behavior for registering payments.
type Ledger interface {
	// Submit evaluates the candidate payment for the order and registers
	// it if no payment exists yet, the order exists, and the amount is
	// acceptable. At most one submission per order id is ever accepted.
	Submit(ctx context.Context, orderID string, candidate Payment) (Status, error)
	// Get retrieves the registered payment for an order.
	Get(ctx context.Context, orderID string) (Payment, error)
	// Remove deletes the payment for an order, if any.
	Remove(ctx context.Context, orderID string) error
}

// ErrNotFound indicates no payment is registered for the order.
var ErrNotFound = errors.New("payment not found")
