// internal/repository/memory/customer_store.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"customer-service/internal/domain/customer"
	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/repository"
)

var _ repository.CustomerStore = (*CustomerStore)(nil)

// CustomerStore keeps records in process memory. Used by tests and for
// local development without a database. The mutex gives ApplyPayment the
// same read-check-write atomicity the database backends get from
// conditional updates.
type CustomerStore struct {
	mu      sync.RWMutex
	records map[string]customer.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{records: make(map[string]customer.Customer)}
}

func (s *CustomerStore) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.records[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &c, nil
}

func (s *CustomerStore) Find(ctx context.Context, q repository.ListQuery) ([]customer.Customer, error) {
	s.mu.RLock()
	matched := s.matching(q)
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	offset := q.Offset()
	if offset >= len(matched) {
		return []customer.Customer{}, nil
	}
	end := offset + q.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *CustomerStore) Count(ctx context.Context, q repository.ListQuery) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.matching(q))), nil
}

func (s *CustomerStore) Insert(ctx context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[c.ID]; exists {
		return xerrors.ErrDuplicateID
	}
	s.records[c.ID] = *c
	return nil
}

func (s *CustomerStore) Update(ctx context.Context, id string, fields repository.EditFields) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.records[id]
	if !ok {
		return 0, nil
	}
	c.Name = fields.Name
	c.Phone = fields.Phone
	c.Address = fields.Address
	c.Model = fields.Model
	c.UpdatedAt = fields.UpdatedAt
	c.UpdatedBy = fields.UpdatedBy
	s.records[id] = c
	return 1, nil
}

func (s *CustomerStore) Delete(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return 0, nil
	}
	delete(s.records, id)
	return 1, nil
}

func (s *CustomerStore) ApplyPayment(ctx context.Context, id string, delta float64, updatedBy string, updatedAt time.Time) (*customer.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.records[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	if c.BalanceAmount < delta {
		return nil, xerrors.ErrOverpayment
	}

	c.AmountReceived += delta
	c.BalanceAmount -= delta
	c.UpdatedAt = updatedAt
	c.UpdatedBy = updatedBy
	s.records[id] = c
	return &c, nil
}

// matching returns copies of every record the query's search term selects.
// Plain substring comparison is inherently literal, so escaped
// metacharacters need no special handling here.
func (s *CustomerStore) matching(q repository.ListQuery) []customer.Customer {
	term := strings.ToLower(q.Search)
	out := make([]customer.Customer, 0, len(s.records))
	for _, c := range s.records {
		if term == "" || containsFold(c, term) {
			out = append(out, c)
		}
	}
	return out
}

func containsFold(c customer.Customer, term string) bool {
	for _, field := range []string{c.Name, c.ID, c.Phone, c.Model} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
