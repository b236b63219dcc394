package app

import (
	"context"
	"errors"
	"sync"
	"time"

	paymentsdb "github.com/tbeaudouin05/authnet-billing/api/services/payments/db"
)

// fakeStore is an in-memory Store. failOn makes the named method return errBoom.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[string]paymentsdb.CustomerProfile
	txs      []paymentsdb.Transaction
	subs     []paymentsdb.Subscription
	payments []paymentsdb.SubscriptionPayment
	products []paymentsdb.Product
	plans    []paymentsdb.SubscriptionPlan
	failOn   map[string]bool
}

var errBoom = errors.New("boom")

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: map[string]paymentsdb.CustomerProfile{}, failOn: map[string]bool{}}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetOrCreateCustomerProfile(_ context.Context, userID string) (paymentsdb.CustomerProfile, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn["GetOrCreateCustomerProfile"] {
		return paymentsdb.CustomerProfile{}, false, errBoom
	}
	if p, ok := f.profiles[userID]; ok {
		return p, false, nil
	}
	p := paymentsdb.CustomerProfile{ID: f.id(), UserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.profiles[userID] = p
	return p, true, nil
}

func (f *fakeStore) SetCustomerProfileID(_ context.Context, userID, profileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return paymentsdb.ErrNotFound
	}
	p.AuthorizeNetProfileID = profileID
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) InsertTransaction(_ context.Context, t paymentsdb.Transaction) (paymentsdb.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn["InsertTransaction"] {
		return paymentsdb.Transaction{}, errBoom
	}
	for _, existing := range f.txs {
		if existing.TransactionID == t.TransactionID {
			return paymentsdb.Transaction{}, paymentsdb.ErrDuplicate
		}
	}
	t.ID = f.id()
	f.txs = append(f.txs, t)
	return t, nil
}

func (f *fakeStore) ListTransactions(_ context.Context, userID string) ([]paymentsdb.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []paymentsdb.Transaction{}
	for i := len(f.txs) - 1; i >= 0; i-- {
		if f.txs[i].UserID == userID {
			out = append(out, f.txs[i])
		}
	}
	return out, nil
}

func (f *fakeStore) GetTransaction(_ context.Context, userID string, id int64) (paymentsdb.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.txs {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return paymentsdb.Transaction{}, paymentsdb.ErrNotFound
}

func (f *fakeStore) InsertSubscription(_ context.Context, sub paymentsdb.Subscription) (paymentsdb.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn["InsertSubscription"] {
		return paymentsdb.Subscription{}, errBoom
	}
	sub.ID = f.id()
	f.subs = append(f.subs, sub)
	return sub, nil
}

func (f *fakeStore) ListSubscriptions(_ context.Context, userID string) ([]paymentsdb.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []paymentsdb.Subscription{}
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetSubscription(_ context.Context, userID string, id int64) (paymentsdb.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		if s.ID == id && s.UserID == userID {
			return s, nil
		}
	}
	return paymentsdb.Subscription{}, paymentsdb.ErrNotFound
}

func (f *fakeStore) UpdateSubscriptionStatus(_ context.Context, id int64, status paymentsdb.SubscriptionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.subs {
		if f.subs[i].ID == id {
			f.subs[i].Status = status
			return nil
		}
	}
	return paymentsdb.ErrNotFound
}

func (f *fakeStore) ListSubscriptionPayments(_ context.Context, subscriptionID int64) ([]paymentsdb.SubscriptionPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []paymentsdb.SubscriptionPayment{}
	for _, p := range f.payments {
		if p.SubscriptionID == subscriptionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListProducts(context.Context) ([]paymentsdb.Product, error) {
	if f.failOn["ListProducts"] {
		return nil, errBoom
	}
	return f.products, nil
}

func (f *fakeStore) GetProduct(_ context.Context, id int64) (paymentsdb.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return paymentsdb.Product{}, paymentsdb.ErrNotFound
}

func (f *fakeStore) ListPlans(context.Context) ([]paymentsdb.SubscriptionPlan, error) {
	return f.plans, nil
}

func (f *fakeStore) GetPlan(_ context.Context, id int64) (paymentsdb.SubscriptionPlan, error) {
	for _, p := range f.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return paymentsdb.SubscriptionPlan{}, paymentsdb.ErrNotFound
}
