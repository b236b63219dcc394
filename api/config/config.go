package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds the global application configuration
var AppConfig *Config

// Config holds the application configuration
type Config struct {
	DatabaseURL string
	// Authorize.Net merchant credentials
	AuthorizeNetLoginID        string
	AuthorizeNetTransactionKey string
	// "production" or "sandbox"
	AuthorizeNetEnvironment string
	// Raw AUTHORIZENET_TIMEOUT value, parsed into GatewayTimeout
	AuthorizeNetTimeout string
	GatewayTimeout      time.Duration
	// HMAC secret used to verify bearer tokens issued by the auth service
	JWTSecret string
	// "production" switches logging to JSON
	AppEnv string
	// Optional: base URL for running remote HTTP integration tests (e.g., https://api.example.com)
	IntegrationBaseURL string
	// Server ports
	HTTPPort string
	GRPCPort string
}

// IsProduction reports whether requests go to the live gateway.
func (c *Config) IsProduction() bool {
	return c.AuthorizeNetEnvironment == EnvProduction
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}

	// Try to load .env file from current directory and parent directories
	currentDir, _ := os.Getwd()
	for currentDir != "/" {
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			err = godotenv.Load(envPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load .env file: %v", err)
			}
			break
		}
		currentDir = filepath.Dir(currentDir)
	}

	requiredVars := []struct {
		name     string
		envVar   string
		display  string
		required bool
	}{
		{"DatabaseURL", "DATABASE_URL", "Database URL", true},
		{"AuthorizeNetLoginID", "AUTHORIZENET_API_LOGIN_ID", "Authorize.Net API Login ID", true},
		{"AuthorizeNetTransactionKey", "AUTHORIZENET_TRANSACTION_KEY", "Authorize.Net Transaction Key", true},
		{"AuthorizeNetEnvironment", "AUTHORIZENET_ENVIRONMENT", "Authorize.Net Environment", false},
		{"AuthorizeNetTimeout", "AUTHORIZENET_TIMEOUT", "Authorize.Net Timeout", false},
		{"JWTSecret", "JWT_SECRET", "JWT Secret", true},
		{"AppEnv", "APP_ENV", "Application Environment", false},
		// Optional integration base URL for remote tests
		{"IntegrationBaseURL", "INTEGRATION_BASE_URL", "Integration Base URL", false},
		// Optional server ports
		{"HTTPPort", "PORT", "HTTP Port", false},
		{"GRPCPort", "GRPC_PORT", "gRPC Port", false},
	}

	for _, v := range requiredVars {
		value := strings.TrimSpace(os.Getenv(v.envVar))
		if v.required && value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", v.display)
		}
		configField := reflect.ValueOf(config).Elem().FieldByName(v.name)
		configField.SetString(value)
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyDefaults() error {
	switch strings.ToLower(c.AuthorizeNetEnvironment) {
	case "", EnvSandbox:
		c.AuthorizeNetEnvironment = EnvSandbox
	case EnvProduction:
		c.AuthorizeNetEnvironment = EnvProduction
	default:
		return fmt.Errorf("invalid AUTHORIZENET_ENVIRONMENT %q: want %q or %q", c.AuthorizeNetEnvironment, EnvProduction, EnvSandbox)
	}

	c.GatewayTimeout = DefaultGatewayTimeout
	if c.AuthorizeNetTimeout != "" {
		d, err := time.ParseDuration(c.AuthorizeNetTimeout)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid AUTHORIZENET_TIMEOUT %q", c.AuthorizeNetTimeout)
		}
		c.GatewayTimeout = d
	}

	if c.HTTPPort == "" {
		c.HTTPPort = "8080"
	}
	if c.GRPCPort == "" {
		c.GRPCPort = "50051"
	}
	return nil
}
