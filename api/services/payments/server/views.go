package server

import (
	"time"

	paymentsdb "github.com/tbeaudouin05/authnet-billing/api/services/payments/db"
)

const dateLayout = "2006-01-02"

// Amounts are rendered as fixed two-decimal strings.

type transactionView struct {
	ID            int64     `json:"id"`
	User          string    `json:"user"`
	TransactionID string    `json:"transaction_id"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	ResponseCode  *string   `json:"response_code"`
	ResponseText  *string   `json:"response_text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newTransactionView(t paymentsdb.Transaction) transactionView {
	return transactionView{
		ID:            t.ID,
		User:          t.UserID,
		TransactionID: t.TransactionID,
		Amount:        t.Amount.StringFixed(2),
		Status:        string(t.Status),
		ResponseCode:  nullable(t.ResponseCode),
		ResponseText:  nullable(t.ResponseText),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

type subscriptionView struct {
	ID             int64     `json:"id"`
	User           string    `json:"user"`
	SubscriptionID string    `json:"subscription_id"`
	Name           string    `json:"name"`
	Amount         string    `json:"amount"`
	IntervalLength int       `json:"interval_length"`
	IntervalUnit   string    `json:"interval_unit"`
	StartDate      string    `json:"start_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newSubscriptionView(s paymentsdb.Subscription) subscriptionView {
	return subscriptionView{
		ID:             s.ID,
		User:           s.UserID,
		SubscriptionID: s.SubscriptionID,
		Name:           s.Name,
		Amount:         s.Amount.StringFixed(2),
		IntervalLength: s.IntervalLength,
		IntervalUnit:   s.IntervalUnit,
		StartDate:      s.StartDate.Format(dateLayout),
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

type paymentView struct {
	ID            int64     `json:"id"`
	Subscription  int64     `json:"subscription"`
	TransactionID string    `json:"transaction_id"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

func newPaymentView(p paymentsdb.SubscriptionPayment) paymentView {
	return paymentView{
		ID:            p.ID,
		Subscription:  p.SubscriptionID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount.StringFixed(2),
		Status:        p.Status,
		Date:          p.Date,
	}
}

type productView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

func newProductView(p paymentsdb.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Image:       nullable(p.Image),
		CreatedAt:   p.CreatedAt,
	}
}

type planView struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Amount         string    `json:"amount"`
	IntervalLength int       `json:"interval_length"`
	IntervalUnit   string    `json:"interval_unit"`
	Features       []string  `json:"features"`
	CreatedAt      time.Time `json:"created_at"`
}

func newPlanView(p paymentsdb.SubscriptionPlan) planView {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return planView{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Amount:         p.Amount.StringFixed(2),
		IntervalLength: p.IntervalLength,
		IntervalUnit:   p.IntervalUnit,
		Features:       features,
		CreatedAt:      p.CreatedAt,
	}
}

func mapViews[T, V any](in []T, f func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
