package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Outcomes(t *testing.T) {
	ok := OK(Subscription{SubscriptionID: "SUB-1"}, nil)
	assert.True(t, ok.IsOK())
	assert.Equal(t, "SUB-1", ok.Payload.SubscriptionID)

	rej := Rejected(Empty{}, []Message{{Code: "E00035", Text: "Subscription not found"}})
	assert.True(t, rej.IsRejected())
	assert.Equal(t, "E00035", rej.Code())
	assert.Equal(t, "Subscription not found", rej.Text())

	down := Unreachable[Empty]()
	assert.True(t, down.IsUnreachable())
	assert.Equal(t, "Unknown Error", down.Text())
	assert.Equal(t, "unreachable", down.Outcome.String())
}

func TestTransactionResponse_Approval(t *testing.T) {
	approved := TransactionResponse{
		TransID:  "60123",
		Messages: []TransactionMessage{{Code: "1", Description: "This transaction has been approved."}},
	}
	assert.True(t, approved.Approved())
	assert.Equal(t, "This transaction has been approved.", approved.Description())

	declined := TransactionResponse{Errors: []TransactionError{{ErrorCode: "2", ErrorText: "This transaction has been declined."}}}
	assert.False(t, declined.Approved())
	assert.Equal(t, "This transaction has been declined.", declined.ErrorText())

	assert.Equal(t, "Unknown error", TransactionResponse{}.ErrorText())
}

func TestCustomerProfile_DefaultPaymentProfileID(t *testing.T) {
	assert.Equal(t, "", CustomerProfile{CustomerProfileID: "1"}.DefaultPaymentProfileID())
	assert.Equal(t, "77", CustomerProfile{CustomerPaymentProfileIDList: []string{"77", "78"}}.DefaultPaymentProfileID())
}
