// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"customer-service/internal/domain/customer"
)

// EditFields is the set of columns an edit may touch. Amount fields are
// deliberately absent: they change only through ApplyPayment.
type EditFields struct {
	Name      string
	Phone     string
	Address   string
	Model     string
	UpdatedAt time.Time
	UpdatedBy string
}

// CustomerStore is the narrow keyed-document interface the core works
// against. Every backend maps its own failures to the xerrors sentinels:
// ErrNotFound, ErrDuplicateID, ErrOverpayment, ErrStoreUnavailable.
type CustomerStore interface {
	// FindByID returns the record or ErrNotFound.
	FindByID(ctx context.Context, id string) (*customer.Customer, error)

	// Find returns the page of records selected by q, fully materialized:
	// no live cursor escapes the store.
	Find(ctx context.Context, q ListQuery) ([]customer.Customer, error)

	// Count returns how many records match q ignoring pagination.
	Count(ctx context.Context, q ListQuery) (int64, error)

	// Insert adds a new record, or ErrDuplicateID if the key exists.
	// The unique-key constraint is enforced by the backend as the second
	// line of defense against creation races.
	Insert(ctx context.Context, c *customer.Customer) error

	// Update applies identity-field changes by key and reports how many
	// records matched.
	Update(ctx context.Context, id string, fields EditFields) (matched int64, err error)

	// Delete removes a record by key and reports how many were removed.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, id string) (deleted int64, err error)

	// ApplyPayment atomically adds delta to the amount received and
	// subtracts it from the balance, but only while the balance stays
	// non-negative. The arithmetic and the guard execute server-side in
	// one conditional write, so two concurrent payments can never both
	// read the same pre-update balance. Returns the updated record,
	// ErrNotFound, or ErrOverpayment.
	ApplyPayment(ctx context.Context, id string, delta float64, updatedBy string, updatedAt time.Time) (*customer.Customer, error)
}
