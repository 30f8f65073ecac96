package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"kopioutlet/pkg/order"
	ordermem "kopioutlet/pkg/order/memory"
	"kopioutlet/pkg/payment"
)

type flatCoster struct{}

func (flatCoster) Cost(drinkName, additions string) float64 { return 3.5 }

func newFixture(t *testing.T, ids ...string) (*ordermem.Store, *Ledger) {
	t.Helper()
	orders := ordermem.New(flatCoster{})
	for _, id := range ids {
		_, err := orders.Create(context.Background(), order.Order{OrderID: id, DrinkName: "latte"})
		assert.NoError(t, err)
	}
	return orders, New(orders)
}

func TestSubmitAccepted(t *testing.T) {
	ctx := context.Background()
	_, ledger := newFixture(t, "o1")

	status, err := ledger.Submit(ctx, "o1", payment.Payment{
		Name:       "Ada",
		CardNumber: "4111",
		ExpiryDate: "12/27",
		Amount:     3.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, payment.Accepted, status.Code)
	assert.Equal(t, "Payment Accepted", status.Message)
	assert.NotNil(t, status.Payment)
	assert.Equal(t, "o1", status.Payment.OrderID)
	assert.Equal(t, "Ada", status.Payment.Name)

	got, err := ledger.Get(ctx, "o1")
	assert.NoError(t, err)
	assert.Equal(t, *status.Payment, got)
}

func TestSubmitDuplicateReturnsFirstPayment(t *testing.T) {
	ctx := context.Background()
	_, ledger := newFixture(t, "o1")

	first, err := ledger.Submit(ctx, "o1", payment.Payment{Name: "Ada", Amount: 3.5})
	assert.NoError(t, err)
	assert.Equal(t, payment.Accepted, first.Code)

	second, err := ledger.Submit(ctx, "o1", payment.Payment{Name: "Bob", Amount: 9.99})
	assert.NoError(t, err)
	assert.Equal(t, payment.Duplicate, second.Code)
	assert.Equal(t, "Duplicate Payment", second.Message)
	assert.Equal(t, *first.Payment, *second.Payment)
}

func TestSubmitInvalidOrder(t *testing.T) {
	_, ledger := newFixture(t)

	status, err := ledger.Submit(context.Background(), "ghost", payment.Payment{Amount: 1})
	assert.NoError(t, err)
	assert.Equal(t, payment.InvalidOrder, status.Code)
	assert.Equal(t, "Invalid Order ID", status.Message)
	assert.Nil(t, status.Payment)
}

func TestSubmitDuplicateCheckPrecedesExistenceCheck(t *testing.T) {
	ctx := context.Background()
	orders, ledger := newFixture(t, "o1")

	status, err := ledger.Submit(ctx, "o1", payment.Payment{Amount: 3.5})
	assert.NoError(t, err)
	assert.Equal(t, payment.Accepted, status.Code)

	// With the order gone but its payment still registered, a resubmission
	// must report the duplicate, not the missing order.
	assert.NoError(t, orders.Remove(ctx, "o1"))
	status, err = ledger.Submit(ctx, "o1", payment.Payment{Amount: 3.5})
	assert.NoError(t, err)
	assert.Equal(t, payment.Duplicate, status.Code)
}

func TestSubmitConcurrentAtMostOneAccepted(t *testing.T) {
	ctx := context.Background()
	_, ledger := newFixture(t, "o1")

	const n = 32
	statuses := make([]payment.Status, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i], _ = ledger.Submit(ctx, "o1", payment.Payment{Name: "Ada", Amount: 3.5})
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, st := range statuses {
		switch st.Code {
		case payment.Accepted:
			accepted++
		case payment.Duplicate:
		default:
			t.Fatalf("unexpected status: %+v", st)
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestRemoveFreesOrderIDForReuse(t *testing.T) {
	ctx := context.Background()
	_, ledger := newFixture(t, "o1")

	_, err := ledger.Submit(ctx, "o1", payment.Payment{Amount: 3.5})
	assert.NoError(t, err)

	assert.NoError(t, ledger.Remove(ctx, "o1"))
	_, err = ledger.Get(ctx, "o1")
	assert.ErrorIs(t, err, payment.ErrNotFound)

	status, err := ledger.Submit(ctx, "o1", payment.Payment{Amount: 3.5})
	assert.NoError(t, err)
	assert.Equal(t, payment.Accepted, status.Code)

	// Removing an absent payment is a no-op.
	assert.NoError(t, ledger.Remove(ctx, "ghost"))
}
