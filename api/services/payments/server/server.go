package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"

	"github.com/tbeaudouin05/authnet-billing/api/auth"
	"github.com/tbeaudouin05/authnet-billing/api/services/payments/app"
)

const maxBodyBytes = 1 << 20

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Server exposes the payments Service over REST.
type Server struct {
	svc      app.Service
	verifier TokenVerifier
	ready    func(context.Context) error
}

type Option func(*Server)

// WithReadiness makes /healthz report the result of check.
func WithReadiness(check func(context.Context) error) Option {
	return func(s *Server) { s.ready = check }
}

func New(svc app.Service, verifier TokenVerifier, opts ...Option) *Server {
	s := &Server{svc: svc, verifier: verifier}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type route struct {
	method  string
	pattern string
	handler runtime.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{http.MethodGet, "/healthz", s.healthz},

		{http.MethodPost, "/charge", s.authed(s.charge)},
		{http.MethodGet, "/transactions", s.authed(s.listTransactions)},
		{http.MethodGet, "/transactions/{id}", s.authed(s.getTransaction)},

		{http.MethodPost, "/subscriptions", s.authed(s.createSubscription)},
		{http.MethodGet, "/subscriptions", s.authed(s.listSubscriptions)},
		{http.MethodGet, "/subscriptions/{id}", s.authed(s.getSubscription)},
		{http.MethodDelete, "/subscriptions/{id}", s.authed(s.cancelSubscription)},
		{http.MethodPost, "/subscriptions/{id}/refresh", s.authed(s.refreshSubscription)},
		{http.MethodGet, "/subscriptions/{id}/payments", s.authed(s.listSubscriptionPayments)},

		{http.MethodGet, "/products", s.listProducts},
		{http.MethodGet, "/products/{id}", s.getProduct},
		{http.MethodGet, "/plans", s.listPlans},
		{http.MethodGet, "/plans/{id}", s.getPlan},
	}
}

// Register mounts every route on mux.
func (s *Server) Register(mux *runtime.ServeMux) error {
	for _, rt := range s.routes() {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return nil
}

// authed rejects requests without a valid bearer token and stores the user id in the request context.
func (s *Server) authed(next runtime.HandlerFunc) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		tok, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		uid, err := s.verifier.Verify(tok)
		if err != nil {
			writeError(w, r, err)
			return
		}
		next(w, r.WithContext(auth.WithUserID(r.Context(), uid)), params)
	}
}

func userID(r *http.Request) string {
	id, _ := auth.UserID(r.Context())
	return id
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "err", err)
	}
}

// decodeBody reads a JSON object into dst. Malformed bodies are input errors.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &app.ValidationError{Fields: map[string]string{"detail": "JSON parse error - " + err.Error()}}
	}
	return nil
}

// pathID parses the {id} path parameter. Anything but a positive integer matches no record.
func pathID(params map[string]string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(params["id"]), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", app.ErrNotFound, params["id"])
	}
	return id, nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			slog.Error("readiness check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) charge(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var in app.ChargeInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.svc.Charge(r.Context(), userID(r), in)
	if err != nil {
		writeChargeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"status":         "success",
		"transaction_id": res.TransactionID,
		"message":        res.Message,
	})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	txs, err := s.svc.ListTransactions(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(txs, newTransactionView))
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := pathID(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, err := s.svc.GetTransaction(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionView(t))
}

func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var in app.CreateSubscriptionInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	sub, err := s.svc.CreateSubscription(r.Context(), userID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSubscriptionView(sub))
}

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	subs, err := s.svc.ListSubscriptions(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(subs, newSubscriptionView))
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := pathID(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, err := s.svc.GetSubscription(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSubscriptionView(sub))
}

func (s *Server) cancelSubscription(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := pathID(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.svc.CancelSubscription(r.Context(), userID(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "Subscription canceled"})
}

func (s *Server) refreshSubscription(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := pathID(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, err := s.svc.RefreshSubscriptionStatus(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSubscriptionView(sub))
}

func (s *Server) listSubscriptionPayments(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := pathID(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payments, err := s.svc.ListSubscriptionPayments(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(payments, newPaymentView))
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	products, err := s.svc.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(products, newProductView))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := pathID(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.svc.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductView(p))
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	plans, err := s.svc.ListPlans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(plans, newPlanView))
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := pathID(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.svc.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanView(p))
}

// RoutingErrorHandler renders unmatched routes in the same JSON shape as handler errors.
func RoutingErrorHandler(_ context.Context, _ *runtime.ServeMux, _ runtime.Marshaler, w http.ResponseWriter, r *http.Request, code int) {
	if code == http.StatusNotFound {
		writeJSON(w, code, map[string]string{"detail": "Not found."})
		return
	}
	slog.Info("routing error", "method", r.Method, "path", r.URL.Path, "status", code)
	writeJSON(w, code, map[string]string{"detail": http.StatusText(code)})
}
