package app

import (
	"errors"
	"fmt"

	gw "github.com/tbeaudouin05/authnet-billing/api/services/payments/gateway"
)

// Typed errors for the payments app layer. The transport layer maps these to
// status codes without knowing anything about the gateway wire format.
var (
	// ErrInvalidInput indicates the request failed validation before any remote call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGatewayUnavailable indicates the gateway could not be reached or answered with garbage.
	ErrGatewayUnavailable = errors.New("gateway unavailable")
	// ErrGatewayRejected indicates the gateway answered with a failure result code.
	ErrGatewayRejected = errors.New("gateway rejected")
	// ErrPaymentProfile indicates no payment profile id could be obtained for the subscription.
	ErrPaymentProfile = errors.New("Payment profile logic not covered")
	// ErrNotFound indicates the record does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")
	// ErrDatabase indicates a database-related failure.
	ErrDatabase = errors.New("database error")
)

// Stage labels reported alongside gateway failures.
const (
	StageCharge                = "Charge failed"
	StageCreateCustomerProfile = "Failed to create customer profile"
	StageCreatePaymentProfile  = "Failed to create payment profile"
	StageCreateSubscription    = "Failed to create subscription"
	StageCancel                = "Failed to cancel"
	StageRefresh               = "Failed to refresh status"
)

// NoResponseText is reported when the gateway was unreachable.
const NoResponseText = "No response from gateway"

// GatewayError is a failed gateway step. Details holds the gateway's own message
// text verbatim. It unwraps to ErrGatewayUnavailable when Unreachable is set
// and to ErrGatewayRejected otherwise.
type GatewayError struct {
	Stage       string
	Details     string
	Unreachable bool
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Details)
}

func (e *GatewayError) Unwrap() error {
	if e.Unreachable {
		return ErrGatewayUnavailable
	}
	return ErrGatewayRejected
}

func rejected(stage, details string) *GatewayError {
	return &GatewayError{Stage: stage, Details: details}
}

func unavailable(stage string) *GatewayError {
	return &GatewayError{Stage: stage, Details: NoResponseText, Unreachable: true}
}

// failure converts a non-OK result into the matching GatewayError.
func failure[T any](stage string, res gw.Result[T]) *GatewayError {
	if res.IsUnreachable() {
		return unavailable(stage)
	}
	return rejected(stage, res.Text())
}
