package db

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

const productColumns = `id, name, description, price, COALESCE(image, ''), created_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.CreatedAt)
	return p, err
}

func (s *Store) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM product ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list product: %w", err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id))
	if err != nil {
		return Product{}, notFound("get product", err)
	}
	return p, nil
}

const planColumns = `id, name, description, amount, interval_length, interval_unit, features, created_at`

func scanPlan(row interface{ Scan(...any) error }) (SubscriptionPlan, error) {
	var p SubscriptionPlan
	var features pq.StringArray
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Amount, &p.IntervalLength, &p.IntervalUnit, &features, &p.CreatedAt)
	p.Features = []string(features)
	if p.Features == nil {
		p.Features = []string{}
	}
	return p, err
}

func (s *Store) ListPlans(ctx context.Context) ([]SubscriptionPlan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+planColumns+` FROM subscription_plan ORDER BY amount, id`)
	if err != nil {
		return nil, fmt.Errorf("list subscription_plan: %w", err)
	}
	defer rows.Close()

	out := []SubscriptionPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription_plan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPlan(ctx context.Context, id int64) (SubscriptionPlan, error) {
	p, err := scanPlan(s.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM subscription_plan WHERE id = $1`, id))
	if err != nil {
		return SubscriptionPlan{}, notFound("get subscription_plan", err)
	}
	return p, nil
}
