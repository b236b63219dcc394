package app

import (
	"context"
	"log/slog"

	paymentsdb "github.com/tbeaudouin05/authnet-billing/api/services/payments/db"
	gw "github.com/tbeaudouin05/authnet-billing/api/services/payments/gateway"
)

// Charge runs a one-off authorize-and-capture and records its outcome.
//
// Nothing is written when the gateway is unreachable or rejects the request
// outright. A top-level "Ok" whose inner transaction response carries no
// success message is recorded as a failed transaction under a sentinel id.
func (s serviceImpl) Charge(ctx context.Context, userID string, in ChargeInput) (ChargeResult, error) {
	if err := s.validate(in); err != nil {
		return ChargeResult{}, err
	}

	res := s.gw.Charge(ctx, gw.ChargeRequest{Amount: in.Amount, Nonce: in.Nonce, Descriptor: in.Descriptor})
	if !res.IsOK() {
		return ChargeResult{}, failure(StageCharge, res)
	}

	tr := res.Payload.TransactionResponse
	if !tr.Approved() {
		failed := paymentsdb.Transaction{
			UserID:        userID,
			TransactionID: FailedTransactionPrefix + s.newID(),
			Amount:        in.Amount,
			Status:        paymentsdb.TransactionFailed,
			ResponseCode:  tr.ResponseCode,
			ResponseText:  tr.ErrorText(),
		}
		if _, err := s.store.InsertTransaction(ctx, failed); err != nil {
			return ChargeResult{}, storeErr("recording failed charge", err)
		}
		slog.Warn("charge declined", "user_id", userID, "transaction_id", failed.TransactionID, "reason", failed.ResponseText)
		return ChargeResult{}, rejected(StageCharge, tr.ErrorText())
	}

	rec, err := s.store.InsertTransaction(ctx, paymentsdb.Transaction{
		UserID:        userID,
		TransactionID: tr.TransID,
		Amount:        in.Amount,
		Status:        paymentsdb.TransactionAuthorized,
		ResponseCode:  tr.ResponseCode,
		ResponseText:  tr.Description(),
	})
	if err != nil {
		slog.Error("charge authorized but not recorded", "user_id", userID, "transaction_id", tr.TransID, "error", err)
		return ChargeResult{}, storeErr("recording charge", err)
	}
	slog.Info("charge authorized", "user_id", userID, "transaction_id", tr.TransID)
	return ChargeResult{TransactionID: tr.TransID, Message: tr.Description(), Transaction: rec}, nil
}

func (s serviceImpl) ListTransactions(ctx context.Context, userID string) ([]paymentsdb.Transaction, error) {
	out, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, storeErr("listing transactions", err)
	}
	return out, nil
}

func (s serviceImpl) GetTransaction(ctx context.Context, userID string, id int64) (paymentsdb.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, userID, id)
	if err != nil {
		return paymentsdb.Transaction{}, storeErr("transaction", err)
	}
	return t, nil
}
