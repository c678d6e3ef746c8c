// internal/domain/customer/dto.go
package customer

type CreateCustomerRequest struct {
	ID               string  `json:"id" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Phone            string  `json:"phone" binding:"required"`
	RegistrationDate string  `json:"registration_date" binding:"required"`
	AmountReceived   float64 `json:"amount_received"`
	BalanceAmount    float64 `json:"balance_amount"`
	Address          string  `json:"address" binding:"required"`
	Model            string  `json:"model"`
}

// UpdateCustomerRequest edits identity fields only. Amount fields are
// mutated exclusively through payments.
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	Model   string `json:"model"`
}

type ApplyPaymentRequest struct {
	Amount float64 `json:"amount"`
}

type ListFilters struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
}

type ListResponse struct {
	Customers  []Customer `json:"customers"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
