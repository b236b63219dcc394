package authnet

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/tbeaudouin05/authnet-billing/api/config"
	gw "github.com/tbeaudouin05/authnet-billing/api/services/payments/gateway"
)

const bom = "\ufeff"

func testConfig(env string) *config.Config {
	return &config.Config{
		AuthorizeNetLoginID:        "login-id",
		AuthorizeNetTransactionKey: "txn-key",
		AuthorizeNetEnvironment:    env,
		GatewayTimeout:             5 * time.Second,
	}
}

// fakeAPI records the last decoded request body and answers with a canned reply.
type fakeAPI struct {
	status int
	reply  string
	got    map[string]map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.got = map[string]map[string]any{}
	_ = json.Unmarshal(raw, &f.got)
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, f.reply)
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(testConfig(config.EnvSandbox), WithEndpoint(srv.URL), WithLogger(quiet))
}

func TestEndpointFor(t *testing.T) {
	assert.Equal(t, ProductionURL, EndpointFor(testConfig(config.EnvProduction)))
	assert.Equal(t, SandboxURL, EndpointFor(testConfig(config.EnvSandbox)))
}

func TestStripBOM(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(StripBOM([]byte(bom+bom+`{"a":1}`))))
	assert.Equal(t, `{"a":1}`, string(StripBOM([]byte(`{"a":1}`))))
}

func TestCharge_Approved(t *testing.T) {
	api := &fakeAPI{reply: bom + `{"transactionResponse":{"transId":"60123","responseCode":"1","messages":[{"code":"1","description":"This transaction has been approved."}]},"messages":{"resultCode":"Ok","message":[{"code":"I00001","text":"Successful."}]}}`}
	c := newTestClient(t, api)

	res := c.Charge(context.Background(), gw.ChargeRequest{Amount: decimal.RequireFromString("19.99"), Nonce: "tok_abc"})

	require.True(t, res.IsOK())
	assert.True(t, res.Payload.TransactionResponse.Approved())
	assert.Equal(t, "60123", res.Payload.TransactionResponse.TransID)
	assert.Equal(t, "1", res.Payload.TransactionResponse.ResponseCode)

	req := api.got[opCreateTransaction]
	require.NotNil(t, req)
	auth := req["merchantAuthentication"].(map[string]any)
	assert.Equal(t, "login-id", auth["name"])
	assert.Equal(t, "txn-key", auth["transactionKey"])
	tr := req["transactionRequest"].(map[string]any)
	assert.Equal(t, "authCaptureTransaction", tr["transactionType"])
	assert.Equal(t, "19.99", tr["amount"])
	assert.Equal(t, "Payment Transaction", tr["order"].(map[string]any)["description"])
	opaque := tr["payment"].(map[string]any)["opaqueData"].(map[string]any)
	assert.Equal(t, opaqueDataDescriptor, opaque["dataDescriptor"])
	assert.Equal(t, "tok_abc", opaque["dataValue"])
}

func TestCharge_OkWithoutInnerMessages(t *testing.T) {
	api := &fakeAPI{reply: `{"transactionResponse":{"responseCode":"3","errors":[{"errorCode":"6","errorText":"The credit card number is invalid."}]},"messages":{"resultCode":"Ok","message":[]}}`}
	c := newTestClient(t, api)

	res := c.Charge(context.Background(), gw.ChargeRequest{Amount: decimal.NewFromInt(5), Nonce: "n", Descriptor: "Order #7"})

	require.True(t, res.IsOK())
	assert.False(t, res.Payload.TransactionResponse.Approved())
	assert.Equal(t, "The credit card number is invalid.", res.Payload.TransactionResponse.ErrorText())
	assert.Equal(t, "Order #7", api.got[opCreateTransaction]["transactionRequest"].(map[string]any)["order"].(map[string]any)["description"])
}

func TestCharge_Rejected(t *testing.T) {
	api := &fakeAPI{reply: `{"messages":{"resultCode":"Error","message":[{"code":"E00007","text":"User authentication failed due to invalid authentication values."}]}}`}
	c := newTestClient(t, api)

	res := c.Charge(context.Background(), gw.ChargeRequest{Amount: decimal.NewFromInt(1), Nonce: "n"})

	assert.True(t, res.IsRejected())
	assert.Equal(t, "E00007", res.Code())
	assert.Equal(t, "User authentication failed due to invalid authentication values.", res.Text())
}

func TestSend_UnreachableCases(t *testing.T) {
	cases := map[string]*fakeAPI{
		"non-2xx":          {status: http.StatusBadGateway, reply: "bad gateway"},
		"malformed body":   {reply: "<html>oops</html>"},
		"missing messages": {reply: `{"transactionResponse":{}}`},
	}
	for name, api := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, api)
			res := c.CancelSubscription(context.Background(), "SUB-1")
			assert.True(t, res.IsUnreachable())
		})
	}
}

func TestSend_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(testConfig(config.EnvSandbox), WithEndpoint(url), WithLogger(quiet))
	res := c.GetSubscriptionStatus(context.Background(), "SUB-1")
	assert.True(t, res.IsUnreachable())
}

func TestCreateCustomerProfile_WithNonce(t *testing.T) {
	api := &fakeAPI{reply: bom + `{"customerProfileId":"900100","customerPaymentProfileIdList":["800200"],"messages":{"resultCode":"Ok","message":[{"code":"I00001","text":"Successful."}]}}`}
	c := newTestClient(t, api)

	res := c.CreateCustomerProfile(context.Background(), gw.CustomerProfileRequest{
		Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", Nonce: "tok_1",
	})

	require.True(t, res.IsOK())
	assert.Equal(t, "900100", res.Payload.CustomerProfileID)
	assert.Equal(t, "800200", res.Payload.DefaultPaymentProfileID())

	req := api.got[opCreateCustomerProfile]
	assert.Equal(t, "testMode", req["validationMode"])
	profile := req["profile"].(map[string]any)
	assert.Equal(t, "ada@example.com", profile["email"])
	assert.Len(t, profile["merchantCustomerId"], maxMerchantCustomerID)
	pp := profile["paymentProfiles"].(map[string]any)
	assert.Equal(t, "individual", pp["customerType"])
	assert.Equal(t, "Ada", pp["billTo"].(map[string]any)["firstName"])
}

func TestCreateCustomerProfile_WithoutNonce(t *testing.T) {
	api := &fakeAPI{reply: `{"customerProfileId":"900101","messages":{"resultCode":"Ok","message":[]}}`}
	c := newTestClient(t, api)

	res := c.CreateCustomerProfile(context.Background(), gw.CustomerProfileRequest{Email: "x@example.com", MerchantCustomerID: "user-42"})

	require.True(t, res.IsOK())
	assert.Empty(t, res.Payload.DefaultPaymentProfileID())
	profile := api.got[opCreateCustomerProfile]["profile"].(map[string]any)
	assert.Equal(t, "user-42", profile["merchantCustomerId"])
	_, hasPayment := profile["paymentProfiles"]
	assert.False(t, hasPayment)
}

func TestCreatePaymentProfile_Production(t *testing.T) {
	api := &fakeAPI{reply: `{"customerProfileId":"900100","customerPaymentProfileId":"800300","messages":{"resultCode":"Ok","message":[]}}`}
	srv := httptest.NewServer(api)
	defer srv.Close()
	c := New(testConfig(config.EnvProduction), WithEndpoint(srv.URL), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	res := c.CreatePaymentProfile(context.Background(), gw.PaymentProfileRequest{CustomerProfileID: "900100", Nonce: "tok_2"})

	require.True(t, res.IsOK())
	assert.Equal(t, "800300", res.Payload.CustomerPaymentProfileID)
	req := api.got[opCreateCustomerPaymentProfile]
	assert.Equal(t, "liveMode", req["validationMode"])
	assert.Equal(t, "900100", req["customerProfileId"])
	assert.Equal(t, true, req["paymentProfile"].(map[string]any)["defaultPaymentProfile"])
}

func TestCreateSubscription_RequestShape(t *testing.T) {
	api := &fakeAPI{reply: `{"subscriptionId":"SUB-99","messages":{"resultCode":"Ok","message":[]}}`}
	c := newTestClient(t, api)

	res := c.CreateSubscription(context.Background(), gw.SubscriptionRequest{
		Name:                     "Pro",
		Amount:                   decimal.RequireFromString("9.5"),
		IntervalLength:           1,
		IntervalUnit:             gw.IntervalMonths,
		StartDate:                time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC),
		CustomerProfileID:        "900100",
		CustomerPaymentProfileID: "800200",
	})

	require.True(t, res.IsOK())
	assert.Equal(t, "SUB-99", res.Payload.SubscriptionID)

	sub := api.got[opARBCreateSubscription]["subscription"].(map[string]any)
	assert.Equal(t, "9.50", sub["amount"])
	sched := sub["paymentSchedule"].(map[string]any)
	assert.Equal(t, "2026-10-16", sched["startDate"])
	assert.Equal(t, "9999", sched["totalOccurrences"])
	assert.Equal(t, map[string]any{"length": "1", "unit": "months"}, sched["interval"])
	assert.Equal(t, "800200", sub["profile"].(map[string]any)["customerPaymentProfileId"])
}

func TestCancelSubscription_Rejected(t *testing.T) {
	api := &fakeAPI{reply: `{"messages":{"resultCode":"Error","message":[{"text":"Subscription not found"}]}}`}
	c := newTestClient(t, api)

	res := c.CancelSubscription(context.Background(), "SUB-99")

	assert.True(t, res.IsRejected())
	assert.Equal(t, "Subscription not found", res.Text())
	assert.Equal(t, "SUB-99", api.got[opARBCancelSubscription]["subscriptionId"])
}

func TestGetSubscriptionStatus(t *testing.T) {
	api := &fakeAPI{reply: `{"status":"suspended","messages":{"resultCode":"Ok","message":[]}}`}
	c := newTestClient(t, api)

	res := c.GetSubscriptionStatus(context.Background(), "SUB-99")

	require.True(t, res.IsOK())
	assert.Equal(t, "suspended", res.Payload.Status)
}

func TestNewMerchantCustomerID(t *testing.T) {
	a, b := NewMerchantCustomerID(), NewMerchantCustomerID()
	assert.Len(t, a, maxMerchantCustomerID)
	assert.NotEqual(t, a, b)
}
