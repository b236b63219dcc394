package router

import (
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	bootstrap "github.com/tbeaudouin05/authnet-billing/api/bootstrap"
	paymentsserver "github.com/tbeaudouin05/authnet-billing/api/services/payments/server"
)

// NewRouter returns the central HTTP router for the API using grpc-gateway's ServeMux.
// Payments routes are mounted as plain path handlers.
func NewRouter() (http.Handler, error) {
	if err := bootstrap.Ensure(); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	mux := runtime.NewServeMux(runtime.WithRoutingErrorHandler(paymentsserver.RoutingErrorHandler))
	srv := paymentsserver.New(
		bootstrap.GetPaymentsService(),
		bootstrap.GetVerifier(),
		paymentsserver.WithReadiness(bootstrap.Ready),
	)
	if err := srv.Register(mux); err != nil {
		return nil, fmt.Errorf("register payments routes: %w", err)
	}
	return mux, nil
}
