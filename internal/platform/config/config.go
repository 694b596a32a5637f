package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort      = "8080"
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
	defaultJWTExpiry = time.Hour
	defaultJWTIssuer = "erp-ledger-core"
	defaultRateLimit = "10-M"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting for the public auth endpoints, in ulule/limiter notation.
	AuthRateLimit string

	// Origins allowed by CORS; "*" in development.
	CORSAllowedOrigins []string
}

// LoadConfig reads configuration from the environment, with a .env file as an
// optional local override source. Missing values fall back to development
// defaults with a warning rather than failing startup.
func LoadConfig() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               stringOr("PORT", defaultPort),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          stringOr("JWT_SECRET", defaultJWTSecret),
		JWTExpiryDuration:  durationOr("JWT_EXPIRY_DURATION", defaultJWTExpiry),
		JWTIssuer:          stringOr("JWT_ISSUER", defaultJWTIssuer),
		AuthRateLimit:      stringOr("AUTH_RATE_LIMIT", defaultRateLimit),
		CORSAllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == defaultJWTSecret && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET not set in production. Using default insecure key.")
	}

	return cfg, nil
}

// stringOr returns the value of the environment key, or the fallback with a
// warning when the key is unset or empty.
func stringOr(key string, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	log.Printf("Warning: %s environment variable not set. Defaulting to %q.\n", key, fallback)
	return fallback
}

// durationOr parses the key as a time.Duration (e.g. "60m", "1h"), falling back
// on absence or parse failure.
func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s (%q). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}
