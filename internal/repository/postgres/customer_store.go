// internal/repository/postgres/customer_store.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"customer-service/internal/domain/customer"
	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/pkg/validate"
	"customer-service/internal/repository"
)

var _ repository.CustomerStore = (*CustomerStore)(nil)

// CustomerStore persists customers in a Postgres table keyed by id.
//
// Expected schema:
//
//	CREATE TABLE customers (
//	    id                TEXT PRIMARY KEY,
//	    name              TEXT NOT NULL,
//	    phone             TEXT NOT NULL,
//	    registration_date TEXT NOT NULL,
//	    amount_received   DOUBLE PRECISION NOT NULL DEFAULT 0,
//	    balance_amount    DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (balance_amount >= 0),
//	    address           TEXT NOT NULL,
//	    model             TEXT NOT NULL DEFAULT '',
//	    created_at        TIMESTAMPTZ NOT NULL,
//	    created_by        TEXT NOT NULL,
//	    updated_at        TIMESTAMPTZ NOT NULL,
//	    updated_by        TEXT NOT NULL
//	);
type CustomerStore struct {
	db *pgxpool.Pool
}

func NewCustomerStore(db *pgxpool.Pool) *CustomerStore {
	return &CustomerStore{db: db}
}

const customerColumns = `id, name, phone, registration_date, amount_received, balance_amount,
	address, model, created_at, created_by, updated_at, updated_by`

func (s *CustomerStore) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, customerColumns)

	c, err := scanCustomer(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, storeErr("find customer", err)
	}
	return c, nil
}

func (s *CustomerStore) Find(ctx context.Context, q repository.ListQuery) ([]customer.Customer, error) {
	where, args := searchClause(q.Search)
	query := fmt.Sprintf(`
		SELECT %s FROM customers
		%s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d`, customerColumns, where, len(args)+1, len(args)+2)
	args = append(args, q.Limit(), q.Offset())

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list customers", err)
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, storeErr("scan customer", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list customers", err)
	}
	return customers, nil
}

func (s *CustomerStore) Count(ctx context.Context, q repository.ListQuery) (int64, error) {
	where, args := searchClause(q.Search)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM customers %s`, where)

	var total int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, storeErr("count customers", err)
	}
	return total, nil
}

func (s *CustomerStore) Insert(ctx context.Context, c *customer.Customer) error {
	query := fmt.Sprintf(`
		INSERT INTO customers (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, customerColumns)

	_, err := s.db.Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.RegistrationDate, c.AmountReceived, c.BalanceAmount,
		c.Address, c.Model, c.CreatedAt, c.CreatedBy, c.UpdatedAt, c.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateID
		}
		return storeErr("insert customer", err)
	}
	return nil
}

func (s *CustomerStore) Update(ctx context.Context, id string, fields repository.EditFields) (int64, error) {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, address = $4, model = $5, updated_at = $6, updated_by = $7
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query,
		id, fields.Name, fields.Phone, fields.Address, fields.Model, fields.UpdatedAt, fields.UpdatedBy,
	)
	if err != nil {
		return 0, storeErr("update customer", err)
	}
	return tag.RowsAffected(), nil
}

func (s *CustomerStore) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return 0, storeErr("delete customer", err)
	}
	return tag.RowsAffected(), nil
}

// ApplyPayment does the arithmetic inside a single guarded UPDATE so the
// balance check and the write cannot interleave with a concurrent payment.
func (s *CustomerStore) ApplyPayment(ctx context.Context, id string, delta float64, updatedBy string, updatedAt time.Time) (*customer.Customer, error) {
	query := fmt.Sprintf(`
		UPDATE customers
		SET amount_received = amount_received + $2,
		    balance_amount  = balance_amount - $2,
		    updated_at = $3,
		    updated_by = $4
		WHERE id = $1 AND balance_amount >= $2
		RETURNING %s`, customerColumns)

	c, err := scanCustomer(s.db.QueryRow(ctx, query, id, delta, updatedAt, updatedBy))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeErr("apply payment", err)
	}

	// Guarded update matched nothing: missing record or insufficient balance.
	if _, ferr := s.FindByID(ctx, id); ferr != nil {
		return nil, ferr
	}
	return nil, xerrors.ErrOverpayment
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.RegistrationDate, &c.AmountReceived, &c.BalanceAmount,
		&c.Address, &c.Model, &c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// searchClause builds the multi-field contains filter. The term is
// LIKE-escaped so % and _ match literally.
func searchClause(term string) (string, []any) {
	if term == "" {
		return "", nil
	}
	where := `
		WHERE (name ILIKE $1 ESCAPE '\'
		    OR id ILIKE $1 ESCAPE '\'
		    OR phone ILIKE $1 ESCAPE '\'
		    OR model ILIKE $1 ESCAPE '\')`
	return where, []any{"%" + validate.EscapeLike(term) + "%"}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, xerrors.ErrStoreUnavailable)
}
