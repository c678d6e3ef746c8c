// internal/domain/customer/entity.go
package customer

import (
	"time"
)

// Customer holds one customer's identity and payment state.
type Customer struct {
	ID               string `json:"id" bson:"_id"`
	Name             string `json:"name" bson:"name"`
	Phone            string `json:"phone" bson:"phone"`
	RegistrationDate string `json:"registration_date" bson:"registrationDate"`

	// Ledger state. Both invariantly >= 0; the pair is not required to
	// sum to a fixed total — no original-amount field is retained.
	AmountReceived float64 `json:"amount_received" bson:"amountReceived"`
	BalanceAmount  float64 `json:"balance_amount" bson:"balanceAmount"`

	Address string `json:"address" bson:"address"`
	Model   string `json:"model" bson:"model"`

	// Audit metadata
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	CreatedBy string    `json:"created_by" bson:"createdBy"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
	UpdatedBy string    `json:"updated_by" bson:"updatedBy"`
}

// Settled reports whether nothing is owed anymore.
func (c *Customer) Settled() bool {
	return c.BalanceAmount == 0
}

// Outstanding reports whether the customer still owes a balance.
func (c *Customer) Outstanding() bool {
	return c.BalanceAmount > 0
}
