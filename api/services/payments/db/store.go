package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a lookup matches no row (or a row owned by someone else).
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique gateway identifier is inserted twice.
	ErrDuplicate = errors.New("duplicate record")
)

const uniqueViolation = "23505"

// Store persists the payment records in Postgres.
type Store struct {
	db *sql.DB
}

func New(conn *sql.DB) *Store { return &Store{db: conn} }

func wrapWriteErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w: %s", op, ErrDuplicate, pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func notFound(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GetOrCreateCustomerProfile returns the user's profile row, inserting an empty one on first use.
// created reports whether this call inserted it.
func (s *Store) GetOrCreateCustomerProfile(ctx context.Context, userID string) (CustomerProfile, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO customer_profile (user_id, authorize_net_profile_id, created_at, updated_at)
		VALUES ($1, '', NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return CustomerProfile{}, false, wrapWriteErr("insert customer_profile", err)
	}
	n, _ := res.RowsAffected()

	var p CustomerProfile
	err = s.db.QueryRowContext(ctx, `
		SELECT id, user_id, authorize_net_profile_id, created_at, updated_at
		FROM customer_profile WHERE user_id = $1`, userID,
	).Scan(&p.ID, &p.UserID, &p.AuthorizeNetProfileID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return CustomerProfile{}, false, notFound("select customer_profile", err)
	}
	return p, n == 1, nil
}

// SetCustomerProfileID stores the gateway profile id for the user.
func (s *Store) SetCustomerProfileID(ctx context.Context, userID, profileID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customer_profile SET authorize_net_profile_id = $2, updated_at = NOW()
		WHERE user_id = $1`, userID, profileID)
	if err != nil {
		return wrapWriteErr("update customer_profile", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update customer_profile: %w", ErrNotFound)
	}
	return nil
}

// InsertTransaction records one charge attempt and returns it with its generated fields.
func (s *Store) InsertTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO payment_transaction (user_id, transaction_id, amount, status, response_code, response_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		t.UserID, t.TransactionID, t.Amount, string(t.Status), t.ResponseCode, t.ResponseText,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Transaction{}, wrapWriteErr("insert payment_transaction", err)
	}
	return t, nil
}

const transactionColumns = `id, user_id, transaction_id, amount, status, COALESCE(response_code, ''), COALESCE(response_text, ''), created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (Transaction, error) {
	var t Transaction
	var status string
	err := row.Scan(&t.ID, &t.UserID, &t.TransactionID, &t.Amount, &status, &t.ResponseCode, &t.ResponseText, &t.CreatedAt, &t.UpdatedAt)
	t.Status = TransactionStatus(status)
	return t, err
}

// ListTransactions returns the user's charges, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+transactionColumns+`
		FROM payment_transaction WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list payment_transaction: %w", err)
	}
	defer rows.Close()

	out := []Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment_transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTransaction(ctx context.Context, userID string, id int64) (Transaction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transactionColumns+`
		FROM payment_transaction WHERE id = $1 AND user_id = $2`, id, userID)
	t, err := scanTransaction(row)
	if err != nil {
		return Transaction{}, notFound("get payment_transaction", err)
	}
	return t, nil
}

// InsertSubscription records a subscription the gateway has confirmed.
func (s *Store) InsertSubscription(ctx context.Context, sub Subscription) (Subscription, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO subscription (user_id, subscription_id, name, amount, interval_length, interval_unit, start_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		sub.UserID, sub.SubscriptionID, sub.Name, sub.Amount, sub.IntervalLength, sub.IntervalUnit, sub.StartDate, string(sub.Status),
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return Subscription{}, wrapWriteErr("insert subscription", err)
	}
	return sub, nil
}

const subscriptionColumns = `id, user_id, subscription_id, name, amount, interval_length, interval_unit, start_date, status, created_at, updated_at`

func scanSubscription(row interface{ Scan(...any) error }) (Subscription, error) {
	var sub Subscription
	var status string
	err := row.Scan(&sub.ID, &sub.UserID, &sub.SubscriptionID, &sub.Name, &sub.Amount, &sub.IntervalLength,
		&sub.IntervalUnit, &sub.StartDate, &status, &sub.CreatedAt, &sub.UpdatedAt)
	sub.Status = SubscriptionStatus(status)
	return sub, err
}

func (s *Store) ListSubscriptions(ctx context.Context, userID string) ([]Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+subscriptionColumns+`
		FROM subscription WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscription: %w", err)
	}
	defer rows.Close()

	out := []Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// GetSubscription returns the subscription only when userID owns it.
func (s *Store) GetSubscription(ctx context.Context, userID string, id int64) (Subscription, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+subscriptionColumns+`
		FROM subscription WHERE id = $1 AND user_id = $2`, id, userID)
	sub, err := scanSubscription(row)
	if err != nil {
		return Subscription{}, notFound("get subscription", err)
	}
	return sub, nil
}

func (s *Store) UpdateSubscriptionStatus(ctx context.Context, id int64, status SubscriptionStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE subscription SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update subscription: %w", ErrNotFound)
	}
	return nil
}

// ListSubscriptionPayments returns the billing ledger of a subscription, newest first.
func (s *Store) ListSubscriptionPayments(ctx context.Context, subscriptionID int64) ([]SubscriptionPayment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subscription_id, transaction_id, amount, status, date
		FROM subscription_payment WHERE subscription_id = $1 ORDER BY date DESC, id DESC`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list subscription_payment: %w", err)
	}
	defer rows.Close()

	out := []SubscriptionPayment{}
	for rows.Next() {
		var p SubscriptionPayment
		if err := rows.Scan(&p.ID, &p.SubscriptionID, &p.TransactionID, &p.Amount, &p.Status, &p.Date); err != nil {
			return nil, fmt.Errorf("scan subscription_payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
