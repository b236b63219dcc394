package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tbeaudouin05/authnet-billing/api/auth"
	"github.com/tbeaudouin05/authnet-billing/api/services/payments/app"
)

// toStatus maps app errors onto gRPC status codes. HTTP statuses are derived
// from the code with runtime.HTTPStatusFromCode so both surfaces agree.
func toStatus(err error) *status.Status {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrPaymentProfile), errors.Is(err, app.ErrGatewayRejected):
		return status.New(codes.FailedPrecondition, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return status.New(codes.Unauthenticated, err.Error())
	case errors.Is(err, app.ErrGatewayUnavailable), errors.Is(err, app.ErrDatabase):
		return status.New(codes.Internal, err.Error())
	default:
		return status.New(codes.Internal, err.Error())
	}
}

// HTTPStatus returns the HTTP status for err.
func HTTPStatus(err error) int {
	return runtime.HTTPStatusFromCode(toStatus(err).Code())
}

// writeError renders err in the generic shape used by read and cancel
// endpoints. Charge and subscription creation have their own shapes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := HTTPStatus(err)
	logFailure(r, code, err)

	var verr *app.ValidationError
	var gerr *app.GatewayError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, code, fieldErrors(verr))
	case errors.As(err, &gerr):
		writeJSON(w, code, map[string]string{"error": gerr.Stage, "details": gerr.Details})
	case errors.Is(err, app.ErrPaymentProfile):
		writeJSON(w, code, map[string]string{"error": app.ErrPaymentProfile.Error()})
	case code == http.StatusNotFound:
		writeJSON(w, code, map[string]string{"detail": "Not found."})
	case code == http.StatusUnauthorized:
		writeJSON(w, code, map[string]string{"detail": "Authentication credentials were not provided or are invalid."})
	default:
		writeJSON(w, code, map[string]string{"error": "Internal server error"})
	}
}

// writeChargeError renders charge failures as {"status":"error","message":...}.
func writeChargeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *app.ValidationError
	var gerr *app.GatewayError
	switch {
	case errors.As(err, &verr):
		writeError(w, r, err)
	case errors.As(err, &gerr):
		code := HTTPStatus(err)
		logFailure(r, code, err)
		writeJSON(w, code, map[string]string{"status": "error", "message": gerr.Details})
	default:
		writeError(w, r, err)
	}
}

func fieldErrors(verr *app.ValidationError) map[string][]string {
	out := make(map[string][]string, len(verr.Fields))
	for field, msg := range verr.Fields {
		out[field] = []string{msg}
	}
	return out
}

func logFailure(r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", code, "err", err)
		return
	}
	slog.Info("request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "err", err)
}
