// internal/handlers/customer/customer_handler.go
package customer

import (
	"errors"
	"net/http"
	"strconv"

	"customer-service/internal/domain/customer"
	"customer-service/internal/middleware"
	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/pkg/response"
	service "customer-service/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a new customer record
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	actor := middleware.MustGetUsername(c)
	result, err := h.customerService.CreateCustomer(c.Request.Context(), actor, &req)
	if err != nil {
		writeServiceError(c, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created", result)
}

// ListCustomers lists customers with optional search and pagination
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	filters := &customer.ListFilters{
		Search: c.Query("search"),
		Page:   page,
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), filters)
	if err != nil {
		writeServiceError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}

// GetCustomer retrieves one customer by id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	result, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, "failed to get customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// UpdateCustomer edits a customer's identity fields
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	actor := middleware.MustGetUsername(c)
	result, err := h.customerService.EditCustomer(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated", result)
}

// ApplyPayment applies a payment against the customer's balance
func (h *CustomerHandler) ApplyPayment(c *gin.Context) {
	var req customer.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	actor := middleware.MustGetUsername(c)
	result, err := h.customerService.ApplyPayment(c.Request.Context(), actor, c.Param("id"), req.Amount)
	if err != nil {
		writeServiceError(c, "failed to apply payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment applied", result)
}

// DeleteCustomer removes a customer record. Deleting an already-deleted
// customer succeeds and reports deleted=false.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	actor := middleware.MustGetUsername(c)
	existed, err := h.customerService.DeleteCustomer(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeServiceError(c, "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted", gin.H{"deleted": existed})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(c *gin.Context, message string, err error) {
	var verr *xerrors.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, message, verr.Reasons)
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, message, err)
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "customer not found")
	case xerrors.Is(err, xerrors.ErrDuplicateID):
		response.Error(c, http.StatusConflict, message, err)
	case xerrors.Is(err, xerrors.ErrOverpayment):
		response.Error(c, http.StatusUnprocessableEntity, message, err)
	case xerrors.Is(err, xerrors.ErrStoreUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "store unavailable, try again", xerrors.ErrStoreUnavailable)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
