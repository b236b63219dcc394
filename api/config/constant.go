package config

import (
	"log"
	"strings"
	"time"
)

const (
	// ProdDbId is the identifier for the production database
	ProdDbId = "billing-prod"

	// Gateway environments accepted in AUTHORIZENET_ENVIRONMENT
	EnvProduction = "production"
	EnvSandbox    = "sandbox"

	// DefaultGatewayTimeout bounds a single outbound gateway call
	DefaultGatewayTimeout = 30 * time.Second
)

// CheckNotProdDB aborts immediately if databaseURL is empty or contains ProdDbId.
// This should be called at the start of any test that interacts with the database.
func CheckNotProdDB(databaseURL string) {
	if databaseURL == "" {
		log.Fatal("DatabaseURL is not configured")
	}
	if strings.Contains(databaseURL, ProdDbId) {
		log.Fatalf("Tests aborted: DatabaseURL contains production identifier %s", ProdDbId)
	}
}
