package app

import (
	"github.com/shopspring/decimal"
	paymentsdb "github.com/tbeaudouin05/authnet-billing/api/services/payments/db"
)

// FailedTransactionPrefix marks the sentinel id of a charge the gateway never approved.
const FailedTransactionPrefix = "FAILED-"

// ChargeInput is a one-off payment request.
type ChargeInput struct {
	Amount     decimal.Decimal `json:"amount" validate:"money"`
	Nonce      string          `json:"nonce" validate:"required,max=500"`
	Descriptor string          `json:"descriptor" validate:"max=255"`
}

// ChargeResult is returned for an authorized charge.
type ChargeResult struct {
	TransactionID string
	Message       string
	Transaction   paymentsdb.Transaction
}

// CreateSubscriptionInput carries the plan fields, the payment token and the
// identity used for a new gateway customer profile.
type CreateSubscriptionInput struct {
	Name           string          `json:"name" validate:"required,max=100"`
	Amount         decimal.Decimal `json:"amount" validate:"money"`
	IntervalLength int             `json:"interval_length" validate:"min=1"`
	IntervalUnit   string          `json:"interval_unit" validate:"required,oneof=months days"`
	Nonce          string          `json:"nonce" validate:"required,max=500"`
	Email          string          `json:"email" validate:"required,email"`
	FirstName      string          `json:"first_name" validate:"required,max=50"`
	LastName       string          `json:"last_name" validate:"required,max=50"`
}
