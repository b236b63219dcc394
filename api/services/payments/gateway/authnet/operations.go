package authnet

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	gw "github.com/tbeaudouin05/authnet-billing/api/services/payments/gateway"
)

const (
	opCreateTransaction            = "createTransactionRequest"
	opCreateCustomerProfile        = "createCustomerProfileRequest"
	opCreateCustomerPaymentProfile = "createCustomerPaymentProfileRequest"
	opARBCreateSubscription        = "ARBCreateSubscriptionRequest"
	opARBCancelSubscription        = "ARBCancelSubscriptionRequest"
	opARBGetSubscriptionStatus     = "ARBGetSubscriptionStatusRequest"

	defaultOrderDescription = "Payment Transaction"
	startDateLayout         = "2006-01-02"
	maxMerchantCustomerID   = 20
)

// Charge runs an authCaptureTransaction against a single-use payment token.
func (c *Client) Charge(ctx context.Context, req gw.ChargeRequest) gw.Result[gw.ChargeResponse] {
	desc := req.Descriptor
	if desc == "" {
		desc = defaultOrderDescription
	}
	body := createTransactionRequest{
		MerchantAuthentication: c.auth(),
		TransactionRequest: transactionRequest{
			TransactionType: "authCaptureTransaction",
			Amount:          req.Amount.StringFixed(2),
			Payment:         opaquePayment(req.Nonce),
			Order:           order{Description: desc},
		},
	}
	return send[gw.ChargeResponse](ctx, c, opCreateTransaction, body)
}

// CreateCustomerProfile creates the gateway customer, attaching the token as
// its first payment profile when one is given.
func (c *Client) CreateCustomerProfile(ctx context.Context, req gw.CustomerProfileRequest) gw.Result[gw.CustomerProfile] {
	merchantID := req.MerchantCustomerID
	if merchantID == "" {
		merchantID = NewMerchantCustomerID()
	}
	profile := customerProfile{MerchantCustomerID: merchantID, Email: req.Email}
	if req.Nonce != "" {
		profile.PaymentProfiles = &profilePaymentProfile{
			CustomerType: "individual",
			BillTo:       billTo{FirstName: req.FirstName, LastName: req.LastName},
			Payment:      opaquePayment(req.Nonce),
		}
	}
	body := createCustomerProfileRequest{
		MerchantAuthentication: c.auth(),
		Profile:                profile,
		ValidationMode:         c.validationMode(),
	}
	return send[gw.CustomerProfile](ctx, c, opCreateCustomerProfile, body)
}

// CreatePaymentProfile adds the token as the default instrument of an existing customer profile.
func (c *Client) CreatePaymentProfile(ctx context.Context, req gw.PaymentProfileRequest) gw.Result[gw.PaymentProfile] {
	body := createCustomerPaymentProfileRequest{
		MerchantAuthentication: c.auth(),
		CustomerProfileID:      req.CustomerProfileID,
		PaymentProfile: paymentProfile{
			BillTo:                billTo{FirstName: req.FirstName, LastName: req.LastName},
			Payment:               opaquePayment(req.Nonce),
			DefaultPaymentProfile: true,
		},
		ValidationMode: c.validationMode(),
	}
	return send[gw.PaymentProfile](ctx, c, opCreateCustomerPaymentProfile, body)
}

func (c *Client) CreateSubscription(ctx context.Context, req gw.SubscriptionRequest) gw.Result[gw.Subscription] {
	body := arbCreateSubscriptionRequest{
		MerchantAuthentication: c.auth(),
		Subscription: arbSubscription{
			Name: req.Name,
			PaymentSchedule: paymentSchedule{
				Interval:         interval{Length: strconv.Itoa(req.IntervalLength), Unit: req.IntervalUnit},
				StartDate:        req.StartDate.Format(startDateLayout),
				TotalOccurrences: ongoingOccurrences,
			},
			Amount: req.Amount.StringFixed(2),
			Profile: subscriptionTarget{
				CustomerProfileID:        req.CustomerProfileID,
				CustomerPaymentProfileID: req.CustomerPaymentProfileID,
			},
		},
	}
	return send[gw.Subscription](ctx, c, opARBCreateSubscription, body)
}

func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) gw.Result[gw.Empty] {
	body := arbSubscriptionIDRequest{MerchantAuthentication: c.auth(), SubscriptionID: subscriptionID}
	return send[gw.Empty](ctx, c, opARBCancelSubscription, body)
}

func (c *Client) GetSubscriptionStatus(ctx context.Context, subscriptionID string) gw.Result[gw.SubscriptionStatus] {
	body := arbSubscriptionIDRequest{MerchantAuthentication: c.auth(), SubscriptionID: subscriptionID}
	return send[gw.SubscriptionStatus](ctx, c, opARBGetSubscriptionStatus, body)
}

// NewMerchantCustomerID returns a random id within the API's 20 character limit.
func NewMerchantCustomerID() string {
	return uuid.NewString()[:maxMerchantCustomerID]
}
