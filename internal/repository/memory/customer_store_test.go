package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-service/internal/domain/customer"
	xerrors "customer-service/internal/pkg/errors"
)

func seed(t *testing.T, s *CustomerStore, id string, balance float64) {
	t.Helper()
	err := s.Insert(context.Background(), &customer.Customer{
		ID:            id,
		Name:          "Asha Rao",
		Phone:         "9876543210",
		BalanceAmount: balance,
	})
	require.NoError(t, err)
}

// Concurrent payments must never both spend the same balance: with a
// balance of 1000 and twenty concurrent payments of 100, exactly ten can
// succeed and the rest fail as overpayments.
func TestApplyPaymentNoLostUpdates(t *testing.T) {
	store := NewCustomerStore()
	seed(t, store, "C001", 1000)

	const workers = 20
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.ApplyPayment(context.Background(), "C001", 100, "admin", time.Now())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, overpaid int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case xerrors.Is(err, xerrors.ErrOverpayment):
			overpaid++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, overpaid)

	final, err := store.FindByID(context.Background(), "C001")
	require.NoError(t, err)
	assert.Equal(t, 0.0, final.BalanceAmount)
	assert.Equal(t, 1000.0, final.AmountReceived)
}

func TestApplyPaymentSentinels(t *testing.T) {
	store := NewCustomerStore()
	seed(t, store, "C001", 50)

	_, err := store.ApplyPayment(context.Background(), "missing", 10, "admin", time.Now())
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	_, err = store.ApplyPayment(context.Background(), "C001", 51, "admin", time.Now())
	assert.ErrorIs(t, err, xerrors.ErrOverpayment)

	updated, err := store.ApplyPayment(context.Background(), "C001", 50, "admin", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.BalanceAmount)
}
