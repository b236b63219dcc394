package config

import (
	"os"
	"testing"
)

// TestLoadConfig_Environment_Integration ensures the deployment environment carries
// the gateway credentials and a non-production database. It is skipped in -short mode
// and when no DATABASE_URL is exported.
func TestLoadConfig_Environment_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping environment config test in -short mode")
	}
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not exported")
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AuthorizeNetLoginID == "" || cfg.AuthorizeNetTransactionKey == "" {
		t.Fatalf("gateway credentials not loaded")
	}
}
