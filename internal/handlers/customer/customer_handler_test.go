package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "customer-service/internal/domain/customer"
	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/repository"
	"customer-service/internal/repository/memory"
	service "customer-service/internal/service/customer"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewCustomerService(memory.NewCustomerStore(), zap.NewNop(), 20, time.Second)
	h := NewCustomerHandler(svc)

	r := gin.New()
	// Stand-in for the auth middleware: tests run as "admin".
	r.Use(func(c *gin.Context) {
		c.Set("username", "admin")
		c.Set("jti", "test-session")
	})

	r.POST("/customers", h.CreateCustomer)
	r.GET("/customers", h.ListCustomers)
	r.GET("/customers/:id", h.GetCustomer)
	r.PUT("/customers/:id", h.UpdateCustomer)
	r.POST("/customers/:id/payments", h.ApplyPayment)
	r.DELETE("/customers/:id", h.DeleteCustomer)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const createBody = `{
	"id": "C001",
	"name": "Asha Rao",
	"phone": "+919876543210",
	"registration_date": "2024-01-15",
	"amount_received": 1000,
	"balance_amount": 4000,
	"address": "12 MG Road, City",
	"model": "X200"
}`

func TestCustomerLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/customers", createBody)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate id conflicts.
	w = doJSON(t, r, http.MethodPost, "/customers", createBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Overpayment is a business-rule rejection, not a validation error.
	w = doJSON(t, r, http.MethodPost, "/customers/C001/payments", `{"amount": 4500}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Exact settlement.
	w = doJSON(t, r, http.MethodPost, "/customers/C001/payments", `{"amount": 4000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			AmountReceived float64 `json:"amount_received"`
			BalanceAmount  float64 `json:"balance_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 5000.0, res.Data.AmountReceived)
	assert.Equal(t, 0.0, res.Data.BalanceAmount)

	w = doJSON(t, r, http.MethodDelete, "/customers/C001", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/customers/C001", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCustomerValidationReasons(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/customers", `{
		"id": "x",
		"name": "Agent 47",
		"phone": "123",
		"registration_date": "2024-02-30",
		"address": "abc"
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var res struct {
		Reasons []string `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Reasons)
}

func TestPaymentOnMissingCustomer(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/customers/NOPE/payments", `{"amount": 10}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNegativePaymentRejected(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/customers", createBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/customers/C001/payments", `{"amount": -5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListWithSearchAndPage(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/customers", createBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/customers?search=asha&page=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, int64(1), res.Data.Total)
	assert.Equal(t, 1, res.Data.TotalPages)
}

// unavailableStore fails every call like a backend whose database is gone.
type unavailableStore struct{}

func (unavailableStore) fail(op string) error {
	return fmt.Errorf("%s: connection refused: %w", op, xerrors.ErrStoreUnavailable)
}

func (s unavailableStore) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return nil, s.fail("find customer")
}

func (s unavailableStore) Find(ctx context.Context, q repository.ListQuery) ([]domain.Customer, error) {
	return nil, s.fail("list customers")
}

func (s unavailableStore) Count(ctx context.Context, q repository.ListQuery) (int64, error) {
	return 0, s.fail("count customers")
}

func (s unavailableStore) Insert(ctx context.Context, c *domain.Customer) error {
	return s.fail("insert customer")
}

func (s unavailableStore) Update(ctx context.Context, id string, fields repository.EditFields) (int64, error) {
	return 0, s.fail("update customer")
}

func (s unavailableStore) Delete(ctx context.Context, id string) (int64, error) {
	return 0, s.fail("delete customer")
}

func (s unavailableStore) ApplyPayment(ctx context.Context, id string, delta float64, updatedBy string, updatedAt time.Time) (*domain.Customer, error) {
	return nil, s.fail("apply payment")
}

func TestStoreOutageMapsTo503(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := service.NewCustomerService(unavailableStore{}, zap.NewNop(), 20, time.Second)
	h := NewCustomerHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("username", "admin")
		c.Set("jti", "test-session")
	})
	r.POST("/customers", h.CreateCustomer)
	r.GET("/customers", h.ListCustomers)
	r.POST("/customers/:id/payments", h.ApplyPayment)
	r.DELETE("/customers/:id", h.DeleteCustomer)

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodPost, "/customers", createBody},
		{http.MethodGet, "/customers", ""},
		{http.MethodPost, "/customers/C001/payments", `{"amount": 100}`},
		{http.MethodDelete, "/customers/C001", ""},
	} {
		w := doJSON(t, r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "%s %s", tc.method, tc.path)

		var res struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.False(t, res.Success)
		assert.Equal(t, xerrors.ErrStoreUnavailable.Error(), res.Error)
	}
}
