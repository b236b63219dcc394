package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tbeaudouin05/authnet-billing/api/auth"
	"github.com/tbeaudouin05/authnet-billing/api/config"
	"github.com/tbeaudouin05/authnet-billing/api/database"
	"github.com/tbeaudouin05/authnet-billing/api/logging"
	paymentsapp "github.com/tbeaudouin05/authnet-billing/api/services/payments/app"
	paymentsdb "github.com/tbeaudouin05/authnet-billing/api/services/payments/db"
	"github.com/tbeaudouin05/authnet-billing/api/services/payments/gateway/authnet"
)

var (
	paymentsService paymentsapp.Service
	verifier        *auth.Verifier
	initOnce        sync.Once
	initErr         error
)

// Init loads config, opens the database, builds the gateway client and wires the payments service.
func Init() error {
	// If dependencies have already been injected (e.g., tests), do not override or init heavy deps.
	if paymentsService != nil && verifier != nil {
		return nil
	}
	var err error
	if config.AppConfig == nil {
		config.AppConfig, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg := config.AppConfig
	logging.Setup(cfg.AppEnv)

	if verifier == nil {
		verifier = auth.NewVerifier(cfg.JWTSecret)
	}
	if paymentsService != nil {
		return nil
	}

	if err := database.Initialize(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	client := authnet.New(cfg)
	paymentsService = paymentsapp.NewService(client, paymentsdb.New(database.GetDB()))
	slog.Info("payments service ready", "environment", cfg.AuthorizeNetEnvironment, "endpoint", authnet.EndpointFor(cfg))
	return nil
}

func GetPaymentsService() paymentsapp.Service { return paymentsService }

// SetPaymentsService allows tests to inject a stub implementation.
func SetPaymentsService(s paymentsapp.Service) { paymentsService = s }

func GetVerifier() *auth.Verifier { return verifier }

// SetVerifier allows tests to inject a verifier with a known secret.
func SetVerifier(v *auth.Verifier) { verifier = v }

// Ready reports whether the database answers.
func Ready(ctx context.Context) error {
	db := database.GetDB()
	if db == nil {
		return errors.New("database not initialized")
	}
	return db.PingContext(ctx)
}

// Ensure runs Init() once per process and returns any initialization error.
func Ensure() error {
	initOnce.Do(func() {
		initErr = Init()
	})
	return initErr
}
