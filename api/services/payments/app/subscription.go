package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	paymentsdb "github.com/tbeaudouin05/authnet-billing/api/services/payments/db"
	gw "github.com/tbeaudouin05/authnet-billing/api/services/payments/gateway"
)

// CreateSubscription provisions a recurring billing schedule for the user.
//
// Steps run in order and stop at the first failure: ensure the local customer
// profile, create the gateway customer profile (first subscription) or attach
// a new payment profile to the existing one, create the ARB subscription, then
// record it. Remote steps that already succeeded are not rolled back.
func (s serviceImpl) CreateSubscription(ctx context.Context, userID string, in CreateSubscriptionInput) (paymentsdb.Subscription, error) {
	if err := s.validate(in); err != nil {
		return paymentsdb.Subscription{}, err
	}

	profile, _, err := s.store.GetOrCreateCustomerProfile(ctx, userID)
	if err != nil {
		return paymentsdb.Subscription{}, storeErr("customer profile", err)
	}

	customerProfileID := profile.AuthorizeNetProfileID
	var paymentProfileID string
	if customerProfileID == "" {
		res := s.gw.CreateCustomerProfile(ctx, gw.CustomerProfileRequest{
			Email:     in.Email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Nonce:     in.Nonce,
		})
		if !res.IsOK() {
			return paymentsdb.Subscription{}, failure(StageCreateCustomerProfile, res)
		}
		if res.Payload.CustomerProfileID == "" {
			return paymentsdb.Subscription{}, unavailable(StageCreateCustomerProfile)
		}
		customerProfileID = res.Payload.CustomerProfileID
		if err := s.store.SetCustomerProfileID(ctx, userID, customerProfileID); err != nil {
			return paymentsdb.Subscription{}, storeErr("saving customer profile id", err)
		}
		paymentProfileID = res.Payload.DefaultPaymentProfileID()
		slog.Info("customer profile created", "user_id", userID, "customer_profile_id", customerProfileID)
	} else {
		res := s.gw.CreatePaymentProfile(ctx, gw.PaymentProfileRequest{
			CustomerProfileID: customerProfileID,
			Nonce:             in.Nonce,
			FirstName:         in.FirstName,
			LastName:          in.LastName,
		})
		if !res.IsOK() {
			return paymentsdb.Subscription{}, failure(StageCreatePaymentProfile, res)
		}
		paymentProfileID = res.Payload.CustomerPaymentProfileID
		slog.Info("payment profile created", "user_id", userID, "customer_profile_id", customerProfileID)
	}

	if paymentProfileID == "" {
		slog.Warn("no payment profile id available", "user_id", userID, "customer_profile_id", customerProfileID)
		return paymentsdb.Subscription{}, ErrPaymentProfile
	}

	start := today(s.now())
	res := s.gw.CreateSubscription(ctx, gw.SubscriptionRequest{
		Name:                     in.Name,
		Amount:                   in.Amount,
		IntervalLength:           in.IntervalLength,
		IntervalUnit:             in.IntervalUnit,
		StartDate:                start,
		CustomerProfileID:        customerProfileID,
		CustomerPaymentProfileID: paymentProfileID,
	})
	if !res.IsOK() {
		return paymentsdb.Subscription{}, failure(StageCreateSubscription, res)
	}
	if res.Payload.SubscriptionID == "" {
		return paymentsdb.Subscription{}, unavailable(StageCreateSubscription)
	}

	sub, err := s.store.InsertSubscription(ctx, paymentsdb.Subscription{
		UserID:         userID,
		SubscriptionID: res.Payload.SubscriptionID,
		Name:           in.Name,
		Amount:         in.Amount,
		IntervalLength: in.IntervalLength,
		IntervalUnit:   in.IntervalUnit,
		StartDate:      start,
		Status:         paymentsdb.SubscriptionActive,
	})
	if err != nil {
		slog.Error("subscription created but not recorded", "user_id", userID, "subscription_id", res.Payload.SubscriptionID, "error", err)
		return paymentsdb.Subscription{}, storeErr("recording subscription", err)
	}
	slog.Info("subscription created", "user_id", userID, "subscription_id", sub.SubscriptionID)
	return sub, nil
}

// CancelSubscription cancels remotely first; the local row only moves to
// canceled once the gateway has confirmed.
func (s serviceImpl) CancelSubscription(ctx context.Context, userID string, id int64) (paymentsdb.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, userID, id)
	if err != nil {
		return paymentsdb.Subscription{}, storeErr("subscription", err)
	}

	res := s.gw.CancelSubscription(ctx, sub.SubscriptionID)
	if !res.IsOK() {
		return paymentsdb.Subscription{}, failure(StageCancel, res)
	}
	if err := s.store.UpdateSubscriptionStatus(ctx, sub.ID, paymentsdb.SubscriptionCanceled); err != nil {
		slog.Error("subscription canceled but not recorded", "user_id", userID, "subscription_id", sub.SubscriptionID, "error", err)
		return paymentsdb.Subscription{}, storeErr("canceling subscription", err)
	}
	sub.Status = paymentsdb.SubscriptionCanceled
	slog.Info("subscription canceled", "user_id", userID, "subscription_id", sub.SubscriptionID)
	return sub, nil
}

// RefreshSubscriptionStatus pulls the ARB status and stores it locally when it changed.
func (s serviceImpl) RefreshSubscriptionStatus(ctx context.Context, userID string, id int64) (paymentsdb.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, userID, id)
	if err != nil {
		return paymentsdb.Subscription{}, storeErr("subscription", err)
	}

	res := s.gw.GetSubscriptionStatus(ctx, sub.SubscriptionID)
	if !res.IsOK() {
		return paymentsdb.Subscription{}, failure(StageRefresh, res)
	}
	status, ok := LocalSubscriptionStatus(res.Payload.Status)
	if !ok {
		return paymentsdb.Subscription{}, rejected(StageRefresh, fmt.Sprintf("unrecognized subscription status %q", res.Payload.Status))
	}
	if status == sub.Status {
		return sub, nil
	}
	if err := s.store.UpdateSubscriptionStatus(ctx, sub.ID, status); err != nil {
		return paymentsdb.Subscription{}, storeErr("updating subscription status", err)
	}
	slog.Info("subscription status refreshed", "user_id", userID, "subscription_id", sub.SubscriptionID, "from", sub.Status, "to", status)
	sub.Status = status
	return sub, nil
}

// LocalSubscriptionStatus maps an ARB status onto the local status set.
func LocalSubscriptionStatus(remote string) (paymentsdb.SubscriptionStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(remote)) {
	case "active":
		return paymentsdb.SubscriptionActive, true
	case "canceled", "cancelled", "terminated":
		return paymentsdb.SubscriptionCanceled, true
	case "expired":
		return paymentsdb.SubscriptionExpired, true
	case "suspended":
		return paymentsdb.SubscriptionSuspended, true
	default:
		return "", false
	}
}

func (s serviceImpl) ListSubscriptions(ctx context.Context, userID string) ([]paymentsdb.Subscription, error) {
	out, err := s.store.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, storeErr("listing subscriptions", err)
	}
	return out, nil
}

func (s serviceImpl) GetSubscription(ctx context.Context, userID string, id int64) (paymentsdb.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, userID, id)
	if err != nil {
		return paymentsdb.Subscription{}, storeErr("subscription", err)
	}
	return sub, nil
}

// ListSubscriptionPayments returns the billing ledger of a subscription the user owns.
func (s serviceImpl) ListSubscriptionPayments(ctx context.Context, userID string, id int64) ([]paymentsdb.SubscriptionPayment, error) {
	sub, err := s.store.GetSubscription(ctx, userID, id)
	if err != nil {
		return nil, storeErr("subscription", err)
	}
	out, err := s.store.ListSubscriptionPayments(ctx, sub.ID)
	if err != nil {
		return nil, storeErr("listing subscription payments", err)
	}
	return out, nil
}

// today truncates t to its calendar date in UTC.
func today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
