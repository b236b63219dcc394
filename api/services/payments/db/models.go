package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionAuthorized TransactionStatus = "authorized"
	TransactionCaptured   TransactionStatus = "captured"
	TransactionVoided     TransactionStatus = "voided"
	TransactionRefunded   TransactionStatus = "refunded"
	TransactionFailed     TransactionStatus = "failed"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCanceled  SubscriptionStatus = "canceled"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

// CustomerProfile links a local user to the gateway customer profile.
// AuthorizeNetProfileID is empty until the gateway profile has been created.
type CustomerProfile struct {
	ID                    int64     `json:"id"`
	UserID                string    `json:"user_id"`
	AuthorizeNetProfileID string    `json:"authorize_net_profile_id"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type Transaction struct {
	ID            int64             `json:"id"`
	UserID        string            `json:"user_id"`
	TransactionID string            `json:"transaction_id"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        TransactionStatus `json:"status"`
	ResponseCode  string            `json:"response_code,omitempty"`
	ResponseText  string            `json:"response_text,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type Subscription struct {
	ID             int64              `json:"id"`
	UserID         string             `json:"user_id"`
	SubscriptionID string             `json:"subscription_id"`
	Name           string             `json:"name"`
	Amount         decimal.Decimal    `json:"amount"`
	IntervalLength int                `json:"interval_length"`
	IntervalUnit   string             `json:"interval_unit"`
	StartDate      time.Time          `json:"start_date"`
	Status         SubscriptionStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// SubscriptionPayment is one billing event against a subscription. Rows are
// appended by the reconciliation side; this service only reads them.
type SubscriptionPayment struct {
	ID             int64           `json:"id"`
	SubscriptionID int64           `json:"subscription"`
	TransactionID  string          `json:"transaction_id"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	Date           time.Time       `json:"date"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type SubscriptionPlan struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	IntervalLength int             `json:"interval_length"`
	IntervalUnit   string          `json:"interval_unit"`
	Features       []string        `json:"features"`
	CreatedAt      time.Time       `json:"created_at"`
}
