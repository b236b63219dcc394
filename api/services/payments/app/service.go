package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	paymentsdb "github.com/tbeaudouin05/authnet-billing/api/services/payments/db"
	gw "github.com/tbeaudouin05/authnet-billing/api/services/payments/gateway"
)

// Service defines the business operations for the payments domain.
// userID is always the authenticated caller; owner-scoped reads and writes
// report ErrNotFound for records that belong to someone else.
type Service interface {
	Charge(ctx context.Context, userID string, in ChargeInput) (ChargeResult, error)
	ListTransactions(ctx context.Context, userID string) ([]paymentsdb.Transaction, error)
	GetTransaction(ctx context.Context, userID string, id int64) (paymentsdb.Transaction, error)

	CreateSubscription(ctx context.Context, userID string, in CreateSubscriptionInput) (paymentsdb.Subscription, error)
	CancelSubscription(ctx context.Context, userID string, id int64) (paymentsdb.Subscription, error)
	RefreshSubscriptionStatus(ctx context.Context, userID string, id int64) (paymentsdb.Subscription, error)
	ListSubscriptions(ctx context.Context, userID string) ([]paymentsdb.Subscription, error)
	GetSubscription(ctx context.Context, userID string, id int64) (paymentsdb.Subscription, error)
	ListSubscriptionPayments(ctx context.Context, userID string, id int64) ([]paymentsdb.SubscriptionPayment, error)

	ListProducts(ctx context.Context) ([]paymentsdb.Product, error)
	GetProduct(ctx context.Context, id int64) (paymentsdb.Product, error)
	ListPlans(ctx context.Context) ([]paymentsdb.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id int64) (paymentsdb.SubscriptionPlan, error)
}

// Store is the persistence the service needs; *paymentsdb.Store implements it.
type Store interface {
	GetOrCreateCustomerProfile(ctx context.Context, userID string) (paymentsdb.CustomerProfile, bool, error)
	SetCustomerProfileID(ctx context.Context, userID, profileID string) error

	InsertTransaction(ctx context.Context, t paymentsdb.Transaction) (paymentsdb.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]paymentsdb.Transaction, error)
	GetTransaction(ctx context.Context, userID string, id int64) (paymentsdb.Transaction, error)

	InsertSubscription(ctx context.Context, sub paymentsdb.Subscription) (paymentsdb.Subscription, error)
	ListSubscriptions(ctx context.Context, userID string) ([]paymentsdb.Subscription, error)
	GetSubscription(ctx context.Context, userID string, id int64) (paymentsdb.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id int64, status paymentsdb.SubscriptionStatus) error
	ListSubscriptionPayments(ctx context.Context, subscriptionID int64) ([]paymentsdb.SubscriptionPayment, error)

	ListProducts(ctx context.Context) ([]paymentsdb.Product, error)
	GetProduct(ctx context.Context, id int64) (paymentsdb.Product, error)
	ListPlans(ctx context.Context) ([]paymentsdb.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id int64) (paymentsdb.SubscriptionPlan, error)
}

var _ Store = (*paymentsdb.Store)(nil)

type serviceImpl struct {
	gw        gw.Gateway
	store     Store
	validator *validator.Validate
	now       func() time.Time
	newID     func() string
}

// Option customizes the service, mostly for tests.
type Option func(*serviceImpl)

// WithClock overrides the clock used for subscription start dates.
func WithClock(now func() time.Time) Option { return func(s *serviceImpl) { s.now = now } }

// WithIDGenerator overrides the suffix generator of failed-charge sentinel ids.
func WithIDGenerator(newID func() string) Option { return func(s *serviceImpl) { s.newID = newID } }

func NewService(g gw.Gateway, st Store, opts ...Option) Service {
	s := serviceImpl{
		gw:        g,
		store:     st,
		validator: newValidator(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// storeErr maps store failures onto the app sentinels.
func storeErr(op string, err error) error {
	if errors.Is(err, paymentsdb.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabase, op, err)
}
