package order

import (
	"context"
	"encoding/xml"
	"errors"
)

// Order represents a drink order placed at the outlet.
type Order struct {
	XMLName   xml.Name `json:"-" xml:"order"`
	OrderID   string   `json:"orderId" xml:"orderId"`
	DrinkName string   `json:"drinkName" xml:"drinkName"`
	Additions string   `json:"additions" xml:"additions"`
	Cost      float64  `json:"cost" xml:"cost"`
	Locked    bool     `json:"locked" xml:"locked"`
}

// AmountAcceptable reports whether a payment of the given amount may be
// taken for this order. It accepts everything today and exists as the seam
// for real funds validation.
func (o Order) AmountAcceptable(amount float64) bool {
	return true
}

// Coster computes the total cost of a drink with its additions.
type Coster interface {
	Cost(drinkName, additions string) float64
}

// Store defines behavior for keeping orders.
type Store interface {
	// Create computes the order's cost and stores it, overwriting any
	// previous order with the same id.
	Create(ctx context.Context, o Order) (Order, error)
	// Get retrieves an order by id.
	Get(ctx context.Context, id string) (Order, error)
	// Update applies upd to an unlocked order: a non-empty drink name
	// replaces the current one, additions are replaced unconditionally,
	// and the cost is recomputed.
	Update(ctx context.Context, id string, upd Order) (Order, error)
	// ListUnlocked returns the orders still open for changes.
	ListUnlocked(ctx context.Context) ([]Order, error)
	// Lock marks an order immutable. Locking a locked order is a no-op.
	Lock(ctx context.Context, id string) (Order, error)
	// Remove deletes an order by id.
	Remove(ctx context.Context, id string) error
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")

// ErrLocked indicates the order is locked and cannot be updated.
var ErrLocked = errors.New("order locked")
