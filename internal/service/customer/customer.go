// internal/service/customer/customer.go
package customer

import (
	"context"
	"time"
	"unicode/utf8"

	"customer-service/internal/domain/customer"
	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/pkg/validate"
	"customer-service/internal/repository"

	"go.uber.org/zap"
)

const defaultStoreTimeout = 3 * time.Second

// CustomerService owns every customer state transition: creation, edits,
// payment application, deletion and listing. The store handle and the
// acting identity are passed in explicitly; the service reads no ambient
// global state.
type CustomerService struct {
	store    repository.CustomerStore
	logger   *zap.Logger
	pageSize int
	timeout  time.Duration
	now      func() time.Time
}

func NewCustomerService(store repository.CustomerStore, logger *zap.Logger, pageSize int, timeout time.Duration) *CustomerService {
	if pageSize < 1 {
		pageSize = repository.DefaultPageSize
	}
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &CustomerService{
		store:    store,
		logger:   logger,
		pageSize: pageSize,
		timeout:  timeout,
		now:      time.Now,
	}
}

// CreateCustomer validates and sanitizes every field, then inserts the
// record. Amounts are taken verbatim from the request: no total-owed
// relationship between amount received and balance is derived or enforced.
func (s *CustomerService) CreateCustomer(ctx context.Context, actor string, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	req.Address = validate.Sanitize(req.Address)
	req.Model = validate.Sanitize(req.Model)
	req.Name = validate.Sanitize(req.Name)

	if err := xerrors.NewValidation(validateCreate(req)); err != nil {
		return nil, err
	}

	now := s.now()
	c := &customer.Customer{
		ID:               req.ID,
		Name:             req.Name,
		Phone:            validate.NormalizePhone(req.Phone),
		RegistrationDate: req.RegistrationDate,
		AmountReceived:   req.AmountReceived,
		BalanceAmount:    req.BalanceAmount,
		Address:          req.Address,
		Model:            req.Model,
		CreatedAt:        now,
		CreatedBy:        actor,
		UpdatedAt:        now,
		UpdatedBy:        actor,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.Insert(ctx, c); err != nil {
		if xerrors.Is(err, xerrors.ErrDuplicateID) {
			return nil, err
		}
		return nil, xerrors.Wrap(err, "create customer")
	}

	s.logger.Info("customer created",
		zap.String("customer_id", c.ID),
		zap.String("created_by", actor),
	)
	return c, nil
}

// GetCustomer retrieves one customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.FindByID(ctx, id)
}

// ListCustomers returns one page of customers plus the pagination metadata
// the caller needs for page-count arithmetic. The search term is sanitized
// here; each store backend escapes it for its own pattern language. A page
// past the end returns an empty slice, not an error.
func (s *CustomerService) ListCustomers(ctx context.Context, filters *customer.ListFilters) (*customer.ListResponse, error) {
	q := repository.NewListQuery(validate.Sanitize(filters.Search), filters.Page, s.pageSize)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	total, err := s.store.Count(ctx, q)
	if err != nil {
		return nil, xerrors.Wrap(err, "count customers")
	}

	customers, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, xerrors.Wrap(err, "list customers")
	}

	return &customer.ListResponse{
		Customers:  customers,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: repository.TotalPages(total, q.PageSize),
	}, nil
}

// EditCustomer updates name, phone, address and model only. Amount fields
// never change here; registration date and id are immutable.
func (s *CustomerService) EditCustomer(ctx context.Context, actor, id string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	req.Address = validate.Sanitize(req.Address)
	req.Model = validate.Sanitize(req.Model)
	req.Name = validate.Sanitize(req.Name)

	if err := xerrors.NewValidation(validateEdit(req)); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	matched, err := s.store.Update(ctx, id, repository.EditFields{
		Name:      req.Name,
		Phone:     validate.NormalizePhone(req.Phone),
		Address:   req.Address,
		Model:     req.Model,
		UpdatedAt: s.now(),
		UpdatedBy: actor,
	})
	if err != nil {
		return nil, xerrors.Wrap(err, "edit customer")
	}
	if matched == 0 {
		return nil, xerrors.ErrNotFound
	}

	s.logger.Info("customer updated",
		zap.String("customer_id", id),
		zap.String("updated_by", actor),
	)
	return s.store.FindByID(ctx, id)
}

// ApplyPayment adds delta to the amount received and subtracts it from the
// outstanding balance. A delta exceeding the balance fails with
// ErrOverpayment and leaves the record untouched; delta zero is a legal
// no-op that still refreshes the audit fields. The conditional write runs
// inside the store so concurrent payments cannot race past the balance
// check.
func (s *CustomerService) ApplyPayment(ctx context.Context, actor, id string, delta float64) (*customer.Customer, error) {
	if !validate.AmountValue(delta) {
		return nil, xerrors.NewValidation([]string{"payment amount must be a non-negative number"})
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	updated, err := s.store.ApplyPayment(ctx, id, delta, actor, s.now())
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) || xerrors.Is(err, xerrors.ErrOverpayment) {
			return nil, err
		}
		return nil, xerrors.Wrap(err, "apply payment")
	}

	s.logger.Info("payment applied",
		zap.String("customer_id", id),
		zap.Float64("amount", delta),
		zap.Float64("balance_amount", updated.BalanceAmount),
		zap.Bool("settled", updated.Settled()),
		zap.String("updated_by", actor),
	)
	return updated, nil
}

// DeleteCustomer removes the record by key and reports whether it existed.
// Deleting twice is not an error: the second call reports false.
func (s *CustomerService) DeleteCustomer(ctx context.Context, actor, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, xerrors.Wrap(err, "delete customer")
	}
	if deleted > 0 {
		s.logger.Info("customer deleted",
			zap.String("customer_id", id),
			zap.String("deleted_by", actor),
		)
	}
	return deleted > 0, nil
}

func validateCreate(req *customer.CreateCustomerRequest) []string {
	var reasons []string
	if !validate.CustomerID(req.ID) {
		reasons = append(reasons, "id must be 3-20 characters: letters, digits, underscore or hyphen")
	}
	if !validate.Name(req.Name) {
		reasons = append(reasons, "name must be 2-100 characters: letters, spaces, '.', '-' or apostrophe")
	}
	if !validate.Phone(req.Phone) {
		reasons = append(reasons, "phone must be 10-15 digits with an optional leading +")
	}
	if !validate.Date(req.RegistrationDate) {
		reasons = append(reasons, "registration date must be a real calendar date in YYYY-MM-DD format")
	}
	if !validate.AmountValue(req.AmountReceived) {
		reasons = append(reasons, "amount received must be a non-negative number")
	}
	if !validate.AmountValue(req.BalanceAmount) {
		reasons = append(reasons, "balance amount must be a non-negative number")
	}
	if utf8.RuneCountInString(req.Address) < 5 {
		reasons = append(reasons, "address must be at least 5 characters")
	}
	return reasons
}

func validateEdit(req *customer.UpdateCustomerRequest) []string {
	var reasons []string
	if !validate.Name(req.Name) {
		reasons = append(reasons, "name must be 2-100 characters: letters, spaces, '.', '-' or apostrophe")
	}
	if !validate.Phone(req.Phone) {
		reasons = append(reasons, "phone must be 10-15 digits with an optional leading +")
	}
	if utf8.RuneCountInString(req.Address) < 5 {
		reasons = append(reasons, "address must be at least 5 characters")
	}
	return reasons
}
