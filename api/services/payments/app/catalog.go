package app

import (
	"context"

	paymentsdb "github.com/tbeaudouin05/authnet-billing/api/services/payments/db"
)

// Catalog reads are public and have no behavior beyond retrieval.

func (s serviceImpl) ListProducts(ctx context.Context) ([]paymentsdb.Product, error) {
	out, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, storeErr("listing products", err)
	}
	return out, nil
}

func (s serviceImpl) GetProduct(ctx context.Context, id int64) (paymentsdb.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return paymentsdb.Product{}, storeErr("product", err)
	}
	return p, nil
}

func (s serviceImpl) ListPlans(ctx context.Context) ([]paymentsdb.SubscriptionPlan, error) {
	out, err := s.store.ListPlans(ctx)
	if err != nil {
		return nil, storeErr("listing plans", err)
	}
	return out, nil
}

func (s serviceImpl) GetPlan(ctx context.Context, id int64) (paymentsdb.SubscriptionPlan, error) {
	p, err := s.store.GetPlan(ctx, id)
	if err != nil {
		return paymentsdb.SubscriptionPlan{}, storeErr("plan", err)
	}
	return p, nil
}
