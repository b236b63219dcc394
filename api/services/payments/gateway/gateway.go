package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=gateway.go -destination=mock_gateway/gateway.go -package=mock_gateway

// Gateway abstracts the payment processor operations needed by the app layer.
// Every method returns a Result instead of an error: failures are values and
// the caller decides how each outcome is surfaced.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) Result[ChargeResponse]
	CreateCustomerProfile(ctx context.Context, req CustomerProfileRequest) Result[CustomerProfile]
	CreatePaymentProfile(ctx context.Context, req PaymentProfileRequest) Result[PaymentProfile]
	CreateSubscription(ctx context.Context, req SubscriptionRequest) Result[Subscription]
	CancelSubscription(ctx context.Context, subscriptionID string) Result[Empty]
	GetSubscriptionStatus(ctx context.Context, subscriptionID string) Result[SubscriptionStatus]
}

// Billing interval units accepted by the recurring billing API.
const (
	IntervalDays   = "days"
	IntervalMonths = "months"
)

// ChargeRequest is a one-off authorize-and-capture.
type ChargeRequest struct {
	Amount     decimal.Decimal
	Nonce      string
	Descriptor string
}

type CustomerProfileRequest struct {
	// MerchantCustomerID is generated when empty.
	MerchantCustomerID string
	Email              string
	FirstName          string
	LastName           string
	// Nonce attaches a default payment profile when set.
	Nonce string
}

type PaymentProfileRequest struct {
	CustomerProfileID string
	Nonce             string
	FirstName         string
	LastName          string
}

type SubscriptionRequest struct {
	Name                     string
	Amount                   decimal.Decimal
	IntervalLength           int
	IntervalUnit             string
	StartDate                time.Time
	CustomerProfileID        string
	CustomerPaymentProfileID string
}

// ChargeResponse is the payload of a createTransactionResponse.
type ChargeResponse struct {
	TransactionResponse TransactionResponse `json:"transactionResponse"`
}

// TransactionResponse is the nested transactionResponse object of a charge.
// A top-level "Ok" does not mean the transaction itself went through.
type TransactionResponse struct {
	ResponseCode string               `json:"responseCode"`
	TransID      string               `json:"transId"`
	Messages     []TransactionMessage `json:"messages"`
	Errors       []TransactionError   `json:"errors"`
}

type TransactionMessage struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type TransactionError struct {
	ErrorCode string `json:"errorCode"`
	ErrorText string `json:"errorText"`
}

// Approved reports whether the inner transaction carries a success message list.
func (t TransactionResponse) Approved() bool { return len(t.Messages) > 0 }

// Description returns the first success message, if any.
func (t TransactionResponse) Description() string {
	if len(t.Messages) == 0 {
		return ""
	}
	return t.Messages[0].Description
}

// ErrorText returns the first inner error text or "Unknown error".
func (t TransactionResponse) ErrorText() string {
	if len(t.Errors) == 0 || t.Errors[0].ErrorText == "" {
		return "Unknown error"
	}
	return t.Errors[0].ErrorText
}

type CustomerProfile struct {
	CustomerProfileID            string   `json:"customerProfileId"`
	CustomerPaymentProfileIDList []string `json:"customerPaymentProfileIdList"`
}

// DefaultPaymentProfileID is the payment profile created alongside the customer profile, if any.
func (p CustomerProfile) DefaultPaymentProfileID() string {
	if len(p.CustomerPaymentProfileIDList) == 0 {
		return ""
	}
	return p.CustomerPaymentProfileIDList[0]
}

type PaymentProfile struct {
	CustomerProfileID        string `json:"customerProfileId"`
	CustomerPaymentProfileID string `json:"customerPaymentProfileId"`
}

type Subscription struct {
	SubscriptionID string `json:"subscriptionId"`
}

type SubscriptionStatus struct {
	Status string `json:"status"`
}

// Empty is the payload of operations that only report a result code.
type Empty struct{}
